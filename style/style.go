// Package style holds the formatting enumerations shared by writers and
// commands: where opening braces go and how include paths are delimited.
package style

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Brace selects where an opening brace is placed relative to the text that
// precedes it.
type Brace int

const (
	// Inherit uses the style configured on the writer.
	Inherit Brace = iota
	// SameLine places the opening brace at the end of the current line.
	SameLine
	// NextLine moves the opening brace to its own line.
	NextLine
	// Whitesmiths moves the opening brace to its own line and indents the
	// braces together with the body.
	Whitesmiths
)

// Traditional names of the brace styles.
const (
	Attach = SameLine
	Allman = NextLine
)

// DefaultBrace is used whenever Inherit cannot be resolved any further.
const DefaultBrace = NextLine

var braceNames = map[Brace]string{
	Inherit:     "inherit",
	SameLine:    "same-line",
	NextLine:    "next-line",
	Whitesmiths: "whitesmiths",
}

var braceAliases = map[string]Brace{
	"attach": SameLine,
	"allman": NextLine,
	"k&r":    SameLine,
}

func (b Brace) String() string {
	if name, ok := braceNames[b]; ok {
		return name
	}
	return fmt.Sprintf("brace(%d)", int(b))
}

// Resolve returns b, or fallback when b is Inherit.
func (b Brace) Resolve(fallback Brace) Brace {
	if b == Inherit {
		return fallback
	}
	return b
}

// ParseBrace parses a brace style name. Names are case-insensitive and
// accept both "same-line"/"next-line" and "attach"/"allman".
func ParseBrace(s string) (Brace, error) {
	key := normalize(s)
	for b, name := range braceNames {
		if name == key {
			return b, nil
		}
	}
	if b, ok := braceAliases[key]; ok {
		return b, nil
	}
	return Inherit, errors.Newf("unknown brace style %q", s)
}

func (b Brace) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Brace) UnmarshalText(text []byte) error {
	parsed, err := ParseBrace(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Include selects the delimiters around an include path.
type Include int

const (
	// InheritInclude uses the style configured on the writer.
	InheritInclude Include = iota
	// AngleBrackets renders <path>, used for system headers.
	AngleBrackets
	// DoubleQuotes renders "path".
	DoubleQuotes
	// SingleQuotes renders 'path'. Not valid C++, kept for other targets.
	SingleQuotes
)

// Quoted is the spelling used for project-local includes.
const Quoted = DoubleQuotes

// DefaultInclude is used whenever InheritInclude cannot be resolved.
const DefaultInclude = DoubleQuotes

var includeNames = map[Include]string{
	InheritInclude: "inherit",
	AngleBrackets:  "angle-brackets",
	DoubleQuotes:   "double-quotes",
	SingleQuotes:   "single-quotes",
}

var includeAliases = map[string]Include{
	"angle":  AngleBrackets,
	"system": AngleBrackets,
	"quoted": DoubleQuotes,
	"double": DoubleQuotes,
	"single": SingleQuotes,
}

func (i Include) String() string {
	if name, ok := includeNames[i]; ok {
		return name
	}
	return fmt.Sprintf("include(%d)", int(i))
}

// Resolve returns i, or fallback when i is InheritInclude.
func (i Include) Resolve(fallback Include) Include {
	if i == InheritInclude {
		return fallback
	}
	return i
}

// Delimiters returns the opening and closing token for the style.
// InheritInclude has no delimiters of its own.
func (i Include) Delimiters() (string, string) {
	switch i {
	case AngleBrackets:
		return "<", ">"
	case DoubleQuotes:
		return `"`, `"`
	case SingleQuotes:
		return "'", "'"
	}
	return "", ""
}

// ParseInclude parses an include style name.
func ParseInclude(s string) (Include, error) {
	key := normalize(s)
	for i, name := range includeNames {
		if name == key {
			return i, nil
		}
	}
	if i, ok := includeAliases[key]; ok {
		return i, nil
	}
	return InheritInclude, errors.Newf("unknown include style %q", s)
}

func (i Include) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Include) UnmarshalText(text []byte) error {
	parsed, err := ParseInclude(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", "-")
}

package writer

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/rubiojr/panini/style"
)

// Config is the passive configuration of a writer. It is merged with the
// defaults when the writer is created and never changes afterwards.
type Config struct {
	// Indent is the unit written once per indentation level.
	Indent string `toml:"indent"`
	// NewLine is the chunk written at the end of every line.
	NewLine string `toml:"newline"`
	// BraceStyle is used by commands created with style.Inherit.
	BraceStyle style.Brace `toml:"brace_style"`
	// IncludeStyle is used by include commands created with
	// style.InheritInclude.
	IncludeStyle style.Include `toml:"include_style"`
	// QuotedIncludesFirst renders quoted includes before system includes
	// in include blocks.
	QuotedIncludesFirst bool `toml:"quoted_includes_first"`
	// Color enables terminal styling. Only the debug writer uses it.
	Color bool `toml:"color"`

	Logger *zap.Logger `toml:"-"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		Indent:       "\t",
		NewLine:      "\n",
		BraceStyle:   style.DefaultBrace,
		IncludeStyle: style.DefaultInclude,
	}
}

// WithDefaults returns c with unset fields filled. Inherit is not a valid
// writer setting and resolves to the default style.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Indent == "" {
		c.Indent = def.Indent
	}
	if c.NewLine == "" {
		c.NewLine = def.NewLine
	}
	c.BraceStyle = c.BraceStyle.Resolve(def.BraceStyle)
	c.IncludeStyle = c.IncludeStyle.Resolve(def.IncludeStyle)
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// LoadConfig reads a TOML configuration file. Keys that are not present keep
// their zero value and are filled with defaults when a writer is created.
//
//	indent = "  "
//	newline = "\r\n"
//	brace_style = "attach"
//	include_style = "double-quotes"
func LoadConfig(path string) (Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrapf(err, "loading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Newf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return c, nil
}

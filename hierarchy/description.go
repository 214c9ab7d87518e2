// Package hierarchy generates a C++ settings header from a data description.
//
// A description lists sections, each holding named settings with default
// values. Every section becomes a class with public members, sections tied
// to a feature are wrapped in a preprocessor guard, and the standard headers
// needed by the inferred member types are included automatically.
//
//	namespace: game
//	sections:
//	  - name: Audio
//	    settings:
//	      - name: volume
//	        value: 0.5
package hierarchy

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Description is the root of a hierarchy file.
type Description struct {
	Namespace string    `yaml:"namespace" toml:"namespace"`
	Comment   string    `yaml:"comment" toml:"comment"`
	Includes  []Include `yaml:"includes" toml:"includes"`
	Sections  []Section `yaml:"sections" toml:"sections"`
}

// Include is a header the generated file depends on.
type Include struct {
	Path string `yaml:"path" toml:"path"`
	// System headers are included with angle brackets.
	System bool `yaml:"system" toml:"system"`
}

// Section becomes a class.
type Section struct {
	Name    string `yaml:"name" toml:"name"`
	Comment string `yaml:"comment" toml:"comment"`
	// Feature is a preprocessor condition guarding the whole class.
	Feature  string    `yaml:"feature" toml:"feature"`
	Settings []Setting `yaml:"settings" toml:"settings"`
}

// Setting becomes a member with a default value. Type is inferred from Value
// when empty.
type Setting struct {
	Name    string `yaml:"name" toml:"name"`
	Type    string `yaml:"type" toml:"type"`
	Value   any    `yaml:"value" toml:"value"`
	Comment string `yaml:"comment" toml:"comment"`
}

// Format is the encoding of a description.
type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	if f == TOML {
		return "toml"
	}
	return "yaml"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return YAML, errors.Newf("%s: unsupported description format %q", path, filepath.Ext(path))
}

// Load reads and validates a description file.
func Load(path string) (*Description, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return d, nil
}

// Parse decodes and validates a description.
func Parse(data []byte, format Format) (*Description, error) {
	var d Description
	switch format {
	case TOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
		if err != nil {
			return nil, errors.Wrap(err, "parsing toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("unknown key %q", undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "parsing yaml")
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that every name is a C++ identifier, that names are unique
// within their scope and that every setting has a value.
func (d *Description) Validate() error {
	if d.Namespace != "" {
		for _, part := range strings.Split(d.Namespace, "::") {
			if !identifier.MatchString(part) {
				return errors.Newf("invalid namespace %q", d.Namespace)
			}
		}
	}

	for _, inc := range d.Includes {
		if strings.TrimSpace(inc.Path) == "" {
			return errors.New("include without path")
		}
	}

	sections := map[string]bool{}
	for _, s := range d.Sections {
		if !identifier.MatchString(s.Name) {
			return errors.Newf("invalid section name %q", s.Name)
		}
		if sections[s.Name] {
			return errors.Newf("duplicate section %q", s.Name)
		}
		sections[s.Name] = true

		settings := map[string]bool{}
		for _, st := range s.Settings {
			if !identifier.MatchString(st.Name) {
				return errors.Newf("section %s: invalid setting name %q", s.Name, st.Name)
			}
			if settings[st.Name] {
				return errors.Newf("section %s: duplicate setting %q", s.Name, st.Name)
			}
			settings[st.Name] = true
			if st.Value == nil {
				return errors.Newf("section %s: setting %s has no value", s.Name, st.Name)
			}
		}
	}
	return nil
}

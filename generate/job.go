// Package generate runs generation jobs: each job loads an input description,
// builds its command tree and commits it to an output file, leaving files
// whose content did not change untouched.
package generate

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rubiojr/panini/command"
	"github.com/rubiojr/panini/hierarchy"
	"github.com/rubiojr/panini/xmlgen"
)

// Kind selects the generator used for a job.
type Kind int

const (
	// Hierarchy renders a YAML or TOML settings description as a C++ header.
	Hierarchy Kind = iota
	// XML re-emits an XML document.
	XML
)

func (k Kind) String() string {
	switch k {
	case Hierarchy:
		return "hierarchy"
	case XML:
		return "xml"
	}
	return "unknown"
}

// KindFromPath picks the generator from the input file extension.
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return Hierarchy, nil
	case ".xml":
		return XML, nil
	}
	return Hierarchy, errors.Newf("%s: no generator for %q files", path, filepath.Ext(path))
}

// Job generates Output from Input.
type Job struct {
	Kind   Kind
	Input  string
	Output string
}

// NewJob creates a job, inferring its kind from the input path.
func NewJob(input, output string) (Job, error) {
	kind, err := KindFromPath(input)
	if err != nil {
		return Job{}, err
	}
	return Job{Kind: kind, Input: input, Output: output}, nil
}

// Tree loads the job's input and builds the command tree to render.
func (j Job) Tree() (command.Command, error) {
	switch j.Kind {
	case Hierarchy:
		d, err := hierarchy.Load(j.Input)
		if err != nil {
			return nil, err
		}
		return hierarchy.Build(d)
	case XML:
		doc, err := xmlgen.Load(j.Input)
		if err != nil {
			return nil, err
		}
		return xmlgen.Build(doc), nil
	}
	return nil, errors.Newf("%s: unknown job kind %d", j.Input, int(j.Kind))
}

package command

import (
	"github.com/rubiojr/panini/writer"
)

// Label writes Name followed by Separator (":" by default). It does not open
// a scope and writes nothing after the separator.
type Label struct {
	Name      string
	Separator string
	// Outdent places the label one level left of the current indentation,
	// the usual spot for access specifiers and goto labels. Outdenting at
	// depth zero is a structural error.
	Outdent bool
}

func (Label) command() {}

func (l Label) Visit(w *writer.Writer) error {
	sep := l.Separator
	if sep == "" {
		sep = ":"
	}

	if !l.Outdent {
		w.Write(l.Name + sep)
		return nil
	}

	if err := w.IndentPop(); err != nil {
		return err
	}
	w.Write(l.Name + sep)
	w.IndentPush()
	return nil
}

package command

import (
	"github.com/rubiojr/panini/include"
	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

// Include renders a single "#include" directive. An inherited style resolves
// to the writer's include style. The path is written as given.
type Include struct {
	Path  string
	Style style.Include
}

func (Include) command() {}

func (i Include) Visit(w *writer.Writer) error {
	opening, closing := i.Style.Resolve(w.IncludeStyle()).Delimiters()
	w.Write("#include " + opening + i.Path + closing)
	return nil
}

// IncludeBlock renders the entries of Set in sorted order, one per line,
// without a trailing new line. The set itself is not modified.
type IncludeBlock struct {
	Set *include.Set
}

func (IncludeBlock) command() {}

func (b IncludeBlock) Visit(w *writer.Writer) error {
	if b.Set == nil || b.Set.Len() == 0 {
		return nil
	}

	sorted := b.Set.Clone()
	sorted.Sort(include.SortOptions{
		Inherit:     w.IncludeStyle(),
		QuotedFirst: w.Config().QuotedIncludesFirst,
	})

	for i, e := range sorted.Entries() {
		if i > 0 {
			w.NewLine()
		}
		if err := (Include{Path: e.Path, Style: e.Style}).Visit(w); err != nil {
			return err
		}
	}
	return nil
}

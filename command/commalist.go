package command

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/rubiojr/panini/writer"
)

// CommaList renders a sequence separated by Separator.
//
// Begin is written before the first item and End after the last one, unless
// the matching Skip option is set. An empty sequence renders nothing at all.
// The sequence is consumed once per visit.
type CommaList[T any] struct {
	Items iter.Seq[T]

	Begin string
	// Separator goes between adjacent items. Defaults to ", ".
	Separator string
	End       string

	SkipFirstItemBeginSeparator bool
	SkipLastItemEndSeparator    bool

	// AddNewLines puts every item after the first on its own line. Trailing
	// blanks of the separator are dropped at the end of the line.
	AddNewLines bool

	// Transform turns an item and its zero-based index into text. Defaults
	// to fmt.Sprint.
	Transform func(item T, index int) string
}

func (CommaList[T]) command() {}

// List is a CommaList over a slice with the default options.
func List[T any](items ...T) CommaList[T] {
	return CommaList[T]{Items: slices.Values(items)}
}

func (l CommaList[T]) Visit(w *writer.Writer) error {
	if l.Items == nil {
		return nil
	}

	sep := l.Separator
	if sep == "" {
		sep = ", "
	}
	transform := l.Transform
	if transform == nil {
		transform = func(item T, _ int) string { return fmt.Sprint(item) }
	}

	index := 0
	for item := range l.Items {
		if index == 0 {
			if !l.SkipFirstItemBeginSeparator {
				w.Write(l.Begin)
			}
		} else if l.AddNewLines {
			w.Write(strings.TrimRight(sep, " \t"))
			w.NewLine()
		} else {
			w.Write(sep)
		}
		w.Write(transform(item, index))
		index++
	}

	if index > 0 && !l.SkipLastItemEndSeparator {
		w.Write(l.End)
	}
	return nil
}

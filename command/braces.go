package command

import (
	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

// Braces wraps Body in a pair of delimiters and indents it one level.
//
// With style.Inherit the writer's brace style is used. The closing delimiter
// always starts on its own line.
type Braces struct {
	Style style.Brace
	// Open and Close default to "{" and "}".
	Open  string
	Close string
	Body  Command
}

func (Braces) command() {}

func (b Braces) Visit(w *writer.Writer) error {
	opening, closing := b.Open, b.Close
	if opening == "" {
		opening = "{"
	}
	if closing == "" {
		closing = "}"
	}

	switch b.Style.Resolve(w.BraceStyle()) {
	case style.SameLine:
		return b.indented(w, opening, closing)

	case style.Whitesmiths:
		// the braces sit at the body's indentation
		pushed := false
		if !w.IsOnNewLine() {
			w.NewLine()
			w.IndentPush()
			pushed = true
		}
		w.Write(opening)
		w.NewLine()
		if err := visit(w, b.Body); err != nil {
			return err
		}
		ensureNewLine(w)
		w.Write(closing)
		if pushed {
			return w.IndentPop()
		}
		return nil

	default:
		ensureNewLine(w)
		return b.indented(w, opening, closing)
	}
}

func (b Braces) indented(w *writer.Writer, opening, closing string) error {
	w.Write(opening)
	w.IndentPush()
	w.NewLine()
	if err := visit(w, b.Body); err != nil {
		return err
	}
	if err := w.IndentPop(); err != nil {
		return err
	}
	ensureNewLine(w)
	w.Write(closing)
	return nil
}

// Scope is a named block such as a function, class or namespace. The name is
// written before the braces, separated by a space when the opening brace
// stays on the same line. An empty name renders bare braces.
type Scope struct {
	Name  string
	Style style.Brace
	Body  Command
}

func (Scope) command() {}

func (s Scope) Visit(w *writer.Writer) error {
	brace := s.Style.Resolve(w.BraceStyle())
	if s.Name != "" {
		w.Write(s.Name)
		if brace == style.SameLine {
			w.Write(" ")
		}
	}
	return Braces{Style: brace, Body: s.Body}.Visit(w)
}

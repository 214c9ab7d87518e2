package command

import (
	"strings"

	"github.com/rubiojr/panini/writer"
)

// CommentBlock renders Body inside "/* ... */". Lines after the first start
// with " * " and indentation pushed by Body indents the comment text. The
// writer leaves comment-block mode when the visit ends, also on error.
type CommentBlock struct {
	Body Command
}

func (CommentBlock) command() {}

func (c CommentBlock) Visit(w *writer.Writer) error {
	w.Write("/* ")
	if err := c.body(w); err != nil {
		return err
	}
	w.Write(" */")
	return nil
}

func (c CommentBlock) body(w *writer.Writer) error {
	defer w.EnterCommentBlock()()

	if err := visit(w, c.Body); err != nil {
		return err
	}
	ensureNewLine(w)
	return nil
}

// CommentLine renders Text as "// " comments, one per line of text. Blank
// lines become a bare "//". Empty text renders nothing.
type CommentLine struct {
	Text string
}

func (CommentLine) command() {}

func (c CommentLine) Visit(w *writer.Writer) error {
	if c.Text == "" {
		return nil
	}
	for i, line := range strings.Split(c.Text, "\n") {
		if i > 0 {
			w.NewLine()
		}
		line = strings.TrimRight(line, "\r")
		if line == "" {
			w.Write("//")
			continue
		}
		w.Write("// " + line)
	}
	return nil
}

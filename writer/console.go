package writer

import (
	"io"
	"os"
)

// ConsoleWriter streams its output directly to a terminal or any other
// io.Writer. There is nothing to compare against, so it always reports a
// change.
type ConsoleWriter struct {
	*Writer
	sink *consoleSink
}

type consoleSink struct {
	out io.Writer
}

// NewConsole creates a writer streaming to out, or to standard output when
// out is nil.
func NewConsole(out io.Writer, cfg Config) *ConsoleWriter {
	if out == nil {
		out = os.Stdout
	}
	sink := &consoleSink{out: out}
	return &ConsoleWriter{Writer: New(sink, cfg), sink: sink}
}

func (c *consoleSink) Write(chunk string) error {
	_, err := io.WriteString(c.out, chunk)
	return err
}

func (c *consoleSink) WriteIndent(unit string, depth int) error {
	for range depth {
		if _, err := io.WriteString(c.out, unit); err != nil {
			return err
		}
	}
	return nil
}

func (c *consoleSink) WriteNewLine(chunk string) error {
	_, err := io.WriteString(c.out, chunk)
	return err
}

func (c *consoleSink) IsChanged() bool { return true }

func (c *consoleSink) Commit(bool) error {
	if f, ok := c.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

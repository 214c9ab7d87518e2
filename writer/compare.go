package writer

import (
	"os"

	"github.com/cockroachdb/errors"
)

// CompareWriter renders into memory and compares the result with previously
// known content. It never writes anywhere, which makes it the building block
// for dry runs and up-to-date checks.
type CompareWriter struct {
	*Writer
	sink *compareSink
}

type compareSink struct {
	bufferSink
	previous    string
	hasPrevious bool
}

func (c *compareSink) IsChanged() bool {
	return !c.hasPrevious || c.previous != c.String()
}

func (c *compareSink) Commit(bool) error { return nil }

// NewCompare creates a writer that compares its output with previous.
func NewCompare(previous string, cfg Config) *CompareWriter {
	sink := &compareSink{previous: previous, hasPrevious: true}
	return &CompareWriter{Writer: New(sink, cfg), sink: sink}
}

// NewCompareFile creates a writer that compares its output with the content
// of path. A missing file means there is no previous content and any output
// counts as changed.
func NewCompareFile(path string, cfg Config) (*CompareWriter, error) {
	sink := &compareSink{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		sink.previous, sink.hasPrevious = string(data), true
	case !errors.Is(err, os.ErrNotExist):
		return nil, ioError(err, "reading %s", path)
	}
	return &CompareWriter{Writer: New(sink, cfg), sink: sink}, nil
}

// HasPrevious reports whether previous content was known.
func (c *CompareWriter) HasPrevious() bool { return c.sink.hasPrevious }

// Previous returns the content the output is compared with.
func (c *CompareWriter) Previous() string { return c.sink.previous }

// Current returns the output rendered so far.
func (c *CompareWriter) Current() string { return c.sink.String() }

// Diff returns a unified diff from the previous content to the current
// output, labelled with name. It is empty when nothing changed.
func (c *CompareWriter) Diff(name string) (string, error) {
	return unifiedDiff(name, c.sink.previous, c.sink.String())
}

package writer

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// bufferSink accumulates output in memory. Backends that publish their output
// only on commit embed it.
type bufferSink struct {
	buf strings.Builder
}

func (b *bufferSink) Write(chunk string) error {
	b.buf.WriteString(chunk)
	return nil
}

func (b *bufferSink) WriteIndent(unit string, depth int) error {
	for range depth {
		b.buf.WriteString(unit)
	}
	return nil
}

func (b *bufferSink) WriteNewLine(chunk string) error {
	b.buf.WriteString(chunk)
	return nil
}

func (b *bufferSink) String() string {
	return b.buf.String()
}

// unifiedDiff renders the difference between two versions of name. It
// returns an empty string when both are equal.
func unifiedDiff(name, previous, current string) (string, error) {
	if previous == current {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(previous),
		B:        difflib.SplitLines(current),
		FromFile: name + " (previous)",
		ToFile:   name + " (generated)",
		Context:  3,
	})
}

package writer

// StringWriter renders into memory.
type StringWriter struct {
	*Writer
	sink *stringSink
}

type stringSink struct {
	bufferSink
}

// IsChanged is always true: a string target has no previous content.
func (s *stringSink) IsChanged() bool { return true }

func (s *stringSink) Commit(bool) error { return nil }

// NewString creates a writer that accumulates its output in memory.
func NewString(cfg Config) *StringWriter {
	sink := &stringSink{}
	return &StringWriter{Writer: New(sink, cfg), sink: sink}
}

// String returns the output written so far.
func (s *StringWriter) String() string {
	return s.sink.String()
}

// Package writer turns the chunks and indentation signals issued by commands
// into formatted text and hands it to a pluggable sink.
//
// A Writer owns the line state: the indentation depth, whether the cursor is
// at the start of a line and whether a comment block is open. Indentation is
// materialized lazily, on the first chunk written after a new line, so blank
// lines never carry trailing whitespace. Backends (string, file, compare,
// console, debug) only decide where the resulting text goes and whether it
// differs from what was there before.
//
// A Writer is used by one render at a time: visit the command tree, then call
// Commit exactly once.
package writer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rubiojr/panini/style"
)

// Sink receives the text produced by a Writer.
type Sink interface {
	// Write appends a chunk of text to the current line.
	Write(chunk string) error
	// WriteIndent appends depth repetitions of unit at the start of a line.
	WriteIndent(unit string, depth int) error
	// WriteNewLine terminates the current line with the configured chunk.
	WriteNewLine(chunk string) error
	// IsChanged reports whether the output differs from what the sink knew
	// before the render started.
	IsChanged() bool
	// Commit publishes the output. Sinks skip work that IsChanged reports as
	// unnecessary unless force is set.
	Commit(force bool) error
}

// Visitor is anything that can render itself into a Writer.
type Visitor interface {
	Visit(w *Writer) error
}

// Writer tracks cursor and indentation state on top of a Sink.
type Writer struct {
	cfg  Config
	sink Sink
	log  *zap.Logger

	depth       int
	atLineStart bool
	line        int

	comment      bool
	commentDepth int

	sinkErr   error
	renderErr error
	committed bool
}

// New creates a Writer sending its output to sink.
func New(sink Sink, cfg Config) *Writer {
	cfg = cfg.WithDefaults()
	return &Writer{
		cfg:         cfg,
		sink:        sink,
		log:         cfg.Logger,
		atLineStart: true,
		line:        1,
	}
}

// Config returns the writer's configuration with defaults applied.
func (w *Writer) Config() Config { return w.cfg }

// BraceStyle returns the brace style used by commands that inherit theirs.
func (w *Writer) BraceStyle() style.Brace { return w.cfg.BraceStyle }

// IncludeStyle returns the include style used by commands that inherit theirs.
func (w *Writer) IncludeStyle() style.Include { return w.cfg.IncludeStyle }

// Depth returns the current indentation depth of regular lines.
func (w *Writer) Depth() int { return w.depth }

// CommentDepth returns the indentation depth inside the open comment block.
func (w *Writer) CommentDepth() int { return w.commentDepth }

// Line returns the 1-based number of the line being written.
func (w *Writer) Line() int { return w.line }

// IsOnNewLine reports whether nothing has been written since the last new
// line.
func (w *Writer) IsOnNewLine() bool { return w.atLineStart }

// IsInCommentBlock reports whether comment-block mode is active.
func (w *Writer) IsInCommentBlock() bool { return w.comment }

// Logger returns the logger from the writer's configuration.
func (w *Writer) Logger() *zap.Logger { return w.log }

// Write appends text at the cursor. Embedded "\n" characters end the current
// line exactly like NewLine, so every line of a multi-line chunk is indented.
func (w *Writer) Write(text string) {
	w.checkOpen()
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if i > 0 {
			w.NewLine()
		}
		if i < len(parts)-1 {
			part = strings.TrimSuffix(part, "\r")
		}
		if part != "" {
			w.writeChunk(part)
		}
	}
}

// Writef writes a formatted chunk.
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// Linef writes a formatted chunk and ends the line.
func (w *Writer) Linef(format string, args ...any) {
	w.Writef(format, args...)
	w.NewLine()
}

func (w *Writer) writeChunk(chunk string) {
	if w.atLineStart {
		w.atLineStart = false
		if w.depth > 0 {
			w.fail(w.sink.WriteIndent(w.cfg.Indent, w.depth))
		}
		if w.comment {
			w.fail(w.sink.Write(" * "))
			if w.commentDepth > 0 {
				w.fail(w.sink.WriteIndent(w.cfg.Indent, w.commentDepth))
			}
		}
	}
	w.fail(w.sink.Write(chunk))
}

// NewLine terminates the current line. Indentation for the next line is
// deferred until something is written on it.
func (w *Writer) NewLine() {
	w.checkOpen()
	if w.comment && w.atLineStart {
		// empty line inside a comment block keeps the continuation marker
		if w.depth > 0 {
			w.fail(w.sink.WriteIndent(w.cfg.Indent, w.depth))
		}
		w.fail(w.sink.Write(" *"))
	}
	w.fail(w.sink.WriteNewLine(w.cfg.NewLine))
	w.atLineStart = true
	w.line++
}

// IndentPush increases the indentation depth by one. Inside a comment block
// the comment text is indented instead.
func (w *Writer) IndentPush() {
	w.checkOpen()
	if w.comment {
		w.commentDepth++
		return
	}
	w.depth++
}

// IndentPop decreases the indentation depth by one. Popping at depth zero
// returns a structural error and aborts the render; the depth is never
// clamped.
func (w *Writer) IndentPop() error {
	w.checkOpen()
	if w.comment {
		if w.commentDepth == 0 {
			return w.abort(Structuralf("indent pop without matching push inside comment block (line %d)", w.line))
		}
		w.commentDepth--
		return nil
	}
	if w.depth == 0 {
		return w.abort(Structuralf("indent pop without matching push (line %d)", w.line))
	}
	w.depth--
	return nil
}

// SetIsInCommentBlock switches comment-block mode. While active, every new
// line starts with " * " and pushes indent the comment text. Switching the
// mode resets the comment indentation.
func (w *Writer) SetIsInCommentBlock(value bool) {
	w.checkOpen()
	w.comment = value
	w.commentDepth = 0
}

// EnterCommentBlock activates comment-block mode and returns a function that
// restores the previous mode and comment indentation.
//
//	defer w.EnterCommentBlock()()
func (w *Writer) EnterCommentBlock() (restore func()) {
	prevComment, prevDepth := w.comment, w.commentDepth
	w.SetIsInCommentBlock(true)
	return func() {
		w.comment = prevComment
		w.commentDepth = prevDepth
	}
}

// Render visits each command in order. The first error aborts the render and
// prevents the writer from being committed.
func (w *Writer) Render(cmds ...Visitor) error {
	for _, c := range cmds {
		if err := c.Visit(w); err != nil {
			return w.abort(err)
		}
	}
	return nil
}

// Err returns the error that aborted the render or the first sink failure.
func (w *Writer) Err() error {
	if w.renderErr != nil {
		return w.renderErr
	}
	return w.sinkErr
}

// IsChanged reports whether the output differs from the sink's previous
// content. Sinks without previous content always report a change.
func (w *Writer) IsChanged() bool {
	return w.sink.IsChanged()
}

// Commit finalizes the output and reports whether it changed. Unchanged
// output is not republished. A failed commit leaves the writer open so it can
// be retried; committing a writer twice panics.
func (w *Writer) Commit() (bool, error) {
	return w.commit(false)
}

// CommitForce finalizes the output and publishes it even if unchanged.
func (w *Writer) CommitForce() error {
	_, err := w.commit(true)
	return err
}

func (w *Writer) commit(force bool) (bool, error) {
	if w.committed {
		misuse("writer already committed")
	}
	if w.renderErr != nil {
		return false, aborted(w.renderErr)
	}
	if w.sinkErr != nil {
		return false, ioError(w.sinkErr, "writing output")
	}

	changed := w.sink.IsChanged()
	if err := w.sink.Commit(force); err != nil {
		w.log.Warn("commit failed", zap.Error(err))
		return changed, ioError(err, "committing output")
	}
	w.committed = true

	w.log.Debug("output committed",
		zap.Bool("changed", changed),
		zap.Bool("force", force),
		zap.Int("lines", w.line))
	return changed, nil
}

// IsCommitted reports whether Commit succeeded.
func (w *Writer) IsCommitted() bool { return w.committed }

func (w *Writer) checkOpen() {
	if w.committed {
		misuse("write after commit")
	}
}

func (w *Writer) abort(err error) error {
	if w.renderErr == nil {
		w.renderErr = err
	}
	return err
}

func (w *Writer) fail(err error) {
	if err != nil && w.sinkErr == nil {
		w.sinkErr = err
	}
}

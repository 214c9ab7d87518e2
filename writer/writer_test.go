package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type visitFunc func(w *Writer) error

func (f visitFunc) Visit(w *Writer) error { return f(w) }

func TestWriterNewLine(t *testing.T) {
	w := NewString(Config{})
	w.Write("[ ] Eggs")
	w.NewLine()
	w.Write("[x] Milk")
	w.NewLine()
	w.Write("[ ] Bread")

	assert.Equal(t, "[ ] Eggs\n[x] Milk\n[ ] Bread", w.String())
	assert.Equal(t, 3, w.Line())
}

func TestWriterIndentation(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		w := NewString(Config{})
		w.IndentPush()
		w.Write("Drive down the road")
		w.NewLine()
		require.NoError(t, w.IndentPop())
		w.Write("Then turn around")
		w.NewLine()
		w.IndentPush()
		w.IndentPush()
		w.Write("Bop it!")
		w.IndentPush()
		require.NoError(t, w.IndentPop())
		w.Write("Twist it!")

		assert.Equal(t, "\tDrive down the road\nThen turn around\n\t\tBop it!Twist it!", w.String())
		assert.Equal(t, 2, w.Depth())
	})

	t.Run("InTheMiddle", func(t *testing.T) {
		w := NewString(Config{})
		w.Write("Let's get these")
		w.IndentPush()
		w.IndentPush()
		w.IndentPush()
		w.Write(" values")
		w.NewLine()
		w.Write("Shall we?")

		assert.Equal(t, "Let's get these values\n\t\t\tShall we?", w.String())
	})

	t.Run("Config", func(t *testing.T) {
		w := NewString(Config{Indent: "  "})
		w.Write("var code = 0;")
		w.IndentPush()
		w.NewLine()
		w.Write("{")
		w.IndentPush()
		w.NewLine()
		w.Write("// looks great")
		require.NoError(t, w.IndentPop())
		w.NewLine()
		w.Write("}")
		require.NoError(t, w.IndentPop())
		w.NewLine()
		w.Write("var done = true;")

		assert.Equal(t, "var code = 0;\n  {\n    // looks great\n  }\nvar done = true;", w.String())
	})
}

func TestWriterBlankLinesHaveNoIndentation(t *testing.T) {
	w := NewString(Config{})
	w.IndentPush()
	w.Write("a")
	w.NewLine()
	w.NewLine()
	w.Write("b")
	w.NewLine()

	assert.Equal(t, "\ta\n\n\tb\n", w.String())
	assert.True(t, w.IsOnNewLine())
}

func TestWriterEmbeddedNewLines(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		text string
		want string
	}{
		{"lf", Config{}, "a\nb", "\ta\n\tb"},
		{"crlf in text", Config{}, "a\r\nb", "\ta\n\tb"},
		{"crlf config", Config{NewLine: "\r\n"}, "a\nb", "\ta\r\n\tb"},
		{"trailing", Config{}, "a\n", "\ta\n"},
		{"only newlines", Config{}, "\n\n", "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewString(tt.cfg)
			w.IndentPush()
			w.Write(tt.text)
			assert.Equal(t, tt.want, w.String())
		})
	}
}

func TestWriterNewLineConfig(t *testing.T) {
	w := NewString(Config{NewLine: "\r\n"})
	w.Write("West ->")
	w.NewLine()
	w.Write("South |")

	assert.Equal(t, "West ->\r\nSouth |", w.String())
}

func TestWriterLinef(t *testing.T) {
	w := NewString(Config{})
	w.Linef("int %s = %d;", "answer", 42)
	w.Writef("%q", "done")

	assert.Equal(t, "int answer = 42;\n\"done\"", w.String())
}

func TestWriterCommentBlock(t *testing.T) {
	w := NewString(Config{})
	w.Write("/* ")
	restore := w.EnterCommentBlock()
	assert.True(t, w.IsInCommentBlock())
	w.Write("line one")
	w.NewLine()
	w.NewLine()
	w.IndentPush()
	assert.Equal(t, 0, w.Depth())
	assert.Equal(t, 1, w.CommentDepth())
	w.Write("nested")
	restore()
	w.NewLine()
	w.Write(" */")

	assert.Equal(t, "/* line one\n *\n * \tnested\n */", w.String())
	assert.False(t, w.IsInCommentBlock())
	assert.Equal(t, 0, w.CommentDepth())
}

func TestWriterCommentBlockKeepsCodeIndentation(t *testing.T) {
	w := NewString(Config{})
	w.IndentPush()
	w.Write("/* ")
	restore := w.EnterCommentBlock()
	w.Write("a")
	w.NewLine()
	w.Write("b")
	restore()
	w.NewLine()
	w.Write(" */")

	assert.Equal(t, "\t/* a\n\t * b\n\t */", w.String())
}

func TestWriterIndentPopUnderflow(t *testing.T) {
	w := NewString(Config{})
	w.Write("x")

	err := w.IndentPop()
	require.Error(t, err)
	assert.True(t, IsStructural(err))
	assert.ErrorIs(t, err, ErrStructural)
	assert.Equal(t, 0, w.Depth())
	assert.Equal(t, err, w.Err())

	_, err = w.Commit()
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, ErrStructural)
	assert.True(t, IsAborted(err))
	assert.False(t, IsIO(err))
	assert.False(t, w.IsCommitted())
}

func TestWriterCommentIndentPopUnderflow(t *testing.T) {
	w := NewString(Config{})
	w.IndentPush()
	restore := w.EnterCommentBlock()
	defer restore()

	err := w.IndentPop()
	assert.True(t, IsStructural(err))
	assert.Equal(t, 1, w.Depth())
}

func TestWriterRender(t *testing.T) {
	w := NewString(Config{})
	err := w.Render(
		visitFunc(func(w *Writer) error {
			w.Write("first")
			return nil
		}),
		visitFunc(func(w *Writer) error {
			w.NewLine()
			w.Write("second")
			return nil
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", w.String())

	changed, err := w.Commit()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, w.IsCommitted())
}

func TestWriterRenderStopsAtFirstError(t *testing.T) {
	w := NewString(Config{})
	boom := Structuralf("bad tree")
	called := false
	err := w.Render(
		visitFunc(func(*Writer) error { return boom }),
		visitFunc(func(*Writer) error {
			called = true
			return nil
		}),
	)
	assert.ErrorIs(t, err, ErrStructural)
	assert.False(t, called)

	_, err = w.Commit()
	assert.ErrorIs(t, err, ErrAborted)
}

func TestWriterMisusePanics(t *testing.T) {
	w := NewString(Config{})
	w.Write("done")
	_, err := w.Commit()
	require.NoError(t, err)

	assert.Panics(t, func() { w.Write("more") })
	assert.Panics(t, func() { w.NewLine() })
	assert.Panics(t, func() { w.IndentPush() })
	assert.Panics(t, func() { _, _ = w.Commit() })
}

func TestWriterInheritResolvesToDefaults(t *testing.T) {
	w := NewString(Config{})
	def := DefaultConfig()

	assert.Equal(t, def.BraceStyle, w.BraceStyle())
	assert.Equal(t, def.IncludeStyle, w.IncludeStyle())
	assert.Equal(t, "\t", w.Config().Indent)
	assert.NotNil(t, w.Logger())
}

func TestWriterCommitLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewString(Config{Logger: zap.New(core)})
	w.Write("x")
	w.NewLine()

	_, err := w.Commit()
	require.NoError(t, err)

	entries := logs.FilterMessage("output committed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["lines"])
}

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "panini.toml", `
indent = "  "
newline = "\r\n"
brace_style = "attach"
include_style = "angle-brackets"
quoted_includes_first = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	w := NewString(cfg)
	assert.Equal(t, "  ", w.Config().Indent)
	assert.Equal(t, "\r\n", w.Config().NewLine)
	assert.Equal(t, "same-line", w.BraceStyle().String())
	assert.Equal(t, "angle-brackets", w.IncludeStyle().String())
	assert.True(t, w.Config().QuotedIncludesFirst)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `tabs = true`},
		{"bad style", `brace_style = "sideways"`},
		{"syntax", `indent = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeTemp(t, "panini.toml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(t.TempDir() + "/missing.toml")
	assert.Error(t, err)
}

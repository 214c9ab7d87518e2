package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/panini/writer"
)

func TestCommentBlock(t *testing.T) {
	tests := []struct {
		name  string
		block CommentBlock
		want  string
	}{
		{
			name: "regular",
			block: CommentBlock{Body: Body(
				Chunk("In the beginning there was only darkness."), NextLine{},
				Chunk("But then there was Disco."),
			)},
			want: "/* In the beginning there was only darkness.\n * But then there was Disco.\n */",
		},
		{
			name:  "empty",
			block: CommentBlock{},
			want:  "/* \n */",
		},
		{
			name:  "trailing new line",
			block: CommentBlock{Body: Lines("one", "two")},
			want:  "/* one\n * two\n */",
		},
		{
			name:  "blank line",
			block: CommentBlock{Body: Lines("one", "", "two")},
			want:  "/* one\n *\n * two\n */",
		},
		{
			name: "indented text",
			block: CommentBlock{Body: Body(
				Lines("Usage:"),
				Callback(func(w *writer.Writer) error {
					w.IndentPush()
					w.Write("panini hierarchy config.yaml")
					return w.IndentPop()
				}),
			)},
			want: "/* Usage:\n * \tpanini hierarchy config.yaml\n */",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, writer.Config{}, tt.block))
		})
	}
}

func TestCommentBlockInsideScope(t *testing.T) {
	got := render(t, writer.Config{}, Scope{Name: "struct Door", Body: Body(
		CommentBlock{Body: Chunk("Opens both ways.")}, NextLine{},
		Lines("bool open;"),
	)})
	assert.Equal(t, "struct Door\n{\n\t/* Opens both ways.\n\t */\n\tbool open;\n}", got)
}

func TestCommentBlockRestoresModeOnError(t *testing.T) {
	boom := errors.New("boom")
	w := writer.NewString(writer.Config{})
	err := CommentBlock{Body: Callback(func(w *writer.Writer) error {
		require.True(t, w.IsInCommentBlock())
		return boom
	})}.Visit(w.Writer)

	assert.ErrorIs(t, err, boom)
	assert.False(t, w.IsInCommentBlock())
}

func TestCommentBlockNested(t *testing.T) {
	w := writer.NewString(writer.Config{})
	restore := w.EnterCommentBlock()
	require.NoError(t, CommentBlock{Body: Chunk("inner")}.Visit(w.Writer))
	assert.True(t, w.IsInCommentBlock(), "outer mode survives")
	restore()
	assert.False(t, w.IsInCommentBlock())
}

func TestCommentLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"regular", "be careful, might be hot", "// be careful, might be hot"},
		{"empty", "", ""},
		{"doubled", "//pack your bags", "// //pack your bags"},
		{"multi-line", "first\n\nsecond", "// first\n//\n// second"},
		{"crlf", "a\r\nb", "// a\n// b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, writer.Config{}, CommentLine{Text: tt.text}))
		})
	}
}

func TestCommentLineIndented(t *testing.T) {
	got := render(t, writer.Config{Indent: "    "}, Braces{Body: Body(CommentLine{Text: "a\nb"}, NextLine{})})
	assert.Equal(t, "{\n    // a\n    // b\n}", got)
}

package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color is a console colour built from its red, green and blue bits, made
// brighter with Light.
type Color uint8

const (
	Black   Color = 0
	Blue    Color = 1 << 0
	Green   Color = 1 << 1
	Red     Color = 1 << 2
	Yellow        = Red | Green
	Cyan          = Green | Blue
	Fuchsia       = Red | Blue
	White         = Red | Green | Blue
	Light   Color = 1 << 3
)

func (c Color) ansi() termenv.ANSIColor {
	idx := 0
	if c&Red != 0 {
		idx |= 1
	}
	if c&Green != 0 {
		idx |= 2
	}
	if c&Blue != 0 {
		idx |= 4
	}
	if c&Light != 0 {
		idx += 8
	}
	return termenv.ANSIColor(idx)
}

const (
	defaultConsoleWidth  = 80
	defaultConsoleHeight = 25
	defaultLinePadding   = 4

	stepPrompt = "Press <Enter> to continue, <Q> to quit debugging"
	endPrompt  = "<END>"
)

// DebugOptions configures a DebugWriter beyond the common Config.
type DebugOptions struct {
	// Output receives the rendering. Defaults to standard output.
	Output io.Writer
	// Input enables step mode: after every line the writer waits for a
	// line of input. Entering "q" stops stepping.
	Input io.Reader
	// Width and Height override the console size. When zero, the size of
	// the terminal behind Output is used, or 80x25.
	Width, Height int
	// LineNumberPadding is the width of the line number column.
	LineNumberPadding int
}

// DebugWriter draws the output on a terminal for inspection while developing
// a command tree. Line numbers precede every line, indentation is drawn as
// alternating coloured "-> " markers and line ends as "<LF>". The cursor is
// positioned explicitly, so the rendering can be redrawn in place. All
// terminal state (cursor, colours) belongs to the writer instance.
type DebugWriter struct {
	*Writer
	sink *debugSink
}

type debugSink struct {
	out   *termenv.Output
	color bool

	input    *bufio.Reader
	stepping bool
	finished bool

	width, height int
	x, y          int
	padding       int

	lineStart bool
	lineNo    int
	err       error
}

// NewDebug creates a debug writer. The screen is cleared and the cursor moved
// to the top-left corner.
func NewDebug(cfg Config, opts DebugOptions) *DebugWriter {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	profile := termenv.Ascii
	if cfg.Color {
		profile = termenv.ANSI
	}

	sink := &debugSink{
		out:       termenv.NewOutput(out, termenv.WithProfile(profile)),
		color:     cfg.Color,
		width:     opts.Width,
		height:    opts.Height,
		padding:   opts.LineNumberPadding,
		lineStart: true,
		lineNo:    1,
	}
	if opts.Input != nil {
		sink.input = bufio.NewReader(opts.Input)
		sink.stepping = true
	}
	if sink.padding <= 0 {
		sink.padding = defaultLinePadding
	}
	if sink.width <= 0 || sink.height <= 0 {
		w, h := consoleSize(out)
		if sink.width <= 0 {
			sink.width = w
		}
		if sink.height <= 0 {
			sink.height = h
		}
	}

	sink.out.ClearScreen()
	sink.SetCursorPosition(0, 0)

	return &DebugWriter{Writer: New(sink, cfg), sink: sink}
}

func consoleSize(out io.Writer) (int, int) {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return defaultConsoleWidth, defaultConsoleHeight
}

// SetColor sets the foreground and background colours of subsequent output.
// It does nothing when colours are disabled.
func (d *DebugWriter) SetColor(fg, bg Color) { d.sink.SetColor(fg, bg) }

// ResetStyles restores the terminal's default colours.
func (d *DebugWriter) ResetStyles() { d.sink.ResetStyles() }

// SetCursorPosition moves the cursor to the zero-based column x and row y.
func (d *DebugWriter) SetCursorPosition(x, y int) { d.sink.SetCursorPosition(x, y) }

// CursorPosition returns the zero-based column and row of the cursor.
func (d *DebugWriter) CursorPosition() (int, int) { return d.sink.x, d.sink.y }

// Size returns the console dimensions used for wrapping.
func (d *DebugWriter) Size() (int, int) { return d.sink.width, d.sink.height }

// IsStepping reports whether the writer still waits for input after each
// line.
func (d *DebugWriter) IsStepping() bool { return d.sink.stepping }

func (d *debugSink) SetColor(fg, bg Color) {
	if !d.color {
		return
	}
	d.emit(termenv.CSI + fg.ansi().Sequence(false) + ";" + bg.ansi().Sequence(true) + "m")
}

func (d *debugSink) ResetStyles() {
	if !d.color {
		return
	}
	d.emit(termenv.CSI + termenv.ResetSeq + "m")
}

func (d *debugSink) SetCursorPosition(x, y int) {
	d.x, d.y = x, y
	d.out.MoveCursor(y+1, x+1)
}

func (d *debugSink) emit(s string) {
	if _, err := io.WriteString(d.out, s); err != nil && d.err == nil {
		d.err = err
	}
}

func (d *debugSink) Write(chunk string) error {
	d.beginLine()
	d.writeChunk(chunk)
	return d.err
}

func (d *debugSink) WriteIndent(_ string, depth int) error {
	d.beginLine()
	for i := range depth {
		bg := Yellow
		if i%2 == 1 {
			bg = Cyan
		}
		d.SetColor(White, bg)
		d.writeChunk("-> ")
	}
	d.ResetStyles()
	return d.err
}

func (d *debugSink) WriteNewLine(string) error {
	d.SetColor(White, Fuchsia)
	d.writeChunk("<LF>")
	d.ResetStyles()
	d.SetCursorPosition(0, d.y+1)

	d.lineStart = true
	d.lineNo++

	if d.stepping {
		d.prompt(stepPrompt)
	}
	return d.err
}

func (d *debugSink) beginLine() {
	if !d.lineStart {
		return
	}
	d.lineStart = false
	d.SetColor(Black, White)
	d.writeChunk(fmt.Sprintf("%*d ", d.padding, d.lineNo))
	d.ResetStyles()
}

// writeChunk writes chunk at the cursor, continuing on the next row when it
// does not fit the console width.
func (d *debugSink) writeChunk(chunk string) {
	for chunk != "" {
		room := d.width - d.x
		if room <= 0 {
			d.SetCursorPosition(0, d.y+1)
			room = d.width
		}

		if w := runewidth.StringWidth(chunk); w <= room {
			d.emit(chunk)
			d.x += w
			return
		}

		head := runewidth.Truncate(chunk, room, "")
		if head == "" {
			if d.x > 0 {
				d.SetCursorPosition(0, d.y+1)
				continue
			}
			// a single rune wider than the console
			_, size := firstRune(chunk)
			head = chunk[:size]
		}
		d.emit(head)
		d.x += runewidth.StringWidth(head)
		chunk = chunk[len(head):]
		d.SetCursorPosition(0, d.y+1)
	}
}

func firstRune(s string) (rune, int) {
	for i, r := range s {
		if i > 0 {
			return r, i
		}
	}
	return 0, len(s)
}

// prompt shows message below the current row and waits for a line of input.
// "q" or the end of input stops step mode.
func (d *debugSink) prompt(message string) {
	row := d.y
	d.SetCursorPosition(0, row+1)
	d.SetColor(Black, White|Light)
	d.emit(message)
	d.ResetStyles()

	line, err := d.input.ReadString('\n')
	if err != nil || strings.EqualFold(strings.TrimSpace(line), "q") {
		d.stepping = false
	}

	d.SetCursorPosition(0, row+1)
	d.emit(strings.Repeat(" ", runewidth.StringWidth(message)))
	d.SetCursorPosition(0, row)
}

func (d *debugSink) IsChanged() bool { return true }

func (d *debugSink) Commit(bool) error {
	if d.finished {
		return d.err
	}
	if d.stepping {
		d.prompt(endPrompt)
	}
	d.SetCursorPosition(0, d.y+1)
	d.finished = true
	return d.err
}

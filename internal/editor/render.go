package editor

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Span is a run of bytes sharing one style. The compositor switches
// style only where the category changes, so consecutive bytes of the
// same category always land in one span.
type Span struct {
	X      int
	Text   []byte
	HL     Highlight
	Invert bool // control-byte glyphs render in inverse video
}

// Line is one visible text row of a composed frame.
type Line struct {
	Spans []Span
}

// Frame is the complete payload of one refresh cycle: the visible
// text rows, the status and message lines and the cursor placement in
// screen coordinates.
type Frame struct {
	Lines       []Line
	StatusLeft  string
	StatusRight string
	Message     string
	CursorX     int
	CursorY     int
}

// ctrlGlyph maps a non-printable byte to its visible stand-in.
func ctrlGlyph(c byte) byte {
	if c <= 26 {
		return '@' + c
	}
	return '?'
}

// composeFrame assembles the frame for the current viewport. The
// caller must have run scroll() first.
func (e *Editor) composeFrame() Frame {
	frame := Frame{
		Lines:   make([]Line, e.screenRows),
		CursorX: e.rx - e.colOff,
		CursorY: e.cy - e.rowOff,
	}

	for y := 0; y < e.screenRows; y++ {
		fileRow := y + e.rowOff
		if fileRow >= e.doc.NumRows() {
			frame.Lines[y] = e.composePlaceholder(y)
			continue
		}
		frame.Lines[y] = e.composeRow(e.doc.Row(fileRow))
	}

	frame.StatusLeft, frame.StatusRight = e.composeStatus()
	if e.statusMsg != "" && time.Since(e.statusTime) < messageTimeout {
		frame.Message = e.statusMsg
	}
	return frame
}

// composePlaceholder renders a row past document end: a tilde, or the
// centered welcome banner on an empty document.
func (e *Editor) composePlaceholder(y int) Line {
	if e.doc.NumRows() == 0 && y == e.screenRows/3 {
		welcome := fmt.Sprintf("ked -- version %s", Version)
		if len(welcome) > e.screenCols {
			welcome = welcome[:e.screenCols]
		}
		padding := (e.screenCols - len(welcome)) / 2
		var spans []Span
		x := 0
		if padding > 0 {
			spans = append(spans, Span{X: 0, Text: []byte("~"), HL: HLNormal})
			x = padding
		}
		spans = append(spans, Span{X: x, Text: []byte(welcome), HL: HLNormal})
		return Line{Spans: spans}
	}
	return Line{Spans: []Span{{X: 0, Text: []byte("~"), HL: HLNormal}}}
}

// composeRow slices a row's render text to the visible column window
// and groups it into style runs.
func (e *Editor) composeRow(row *Row) Line {
	start := e.colOff
	if start > len(row.Render) {
		start = len(row.Render)
	}
	end := start + e.screenCols
	if end > len(row.Render) {
		end = len(row.Render)
	}

	var spans []Span
	var run []byte
	runStart := 0
	runHL := HLNormal
	flush := func() {
		if len(run) > 0 {
			spans = append(spans, Span{X: runStart, Text: run, HL: runHL})
			run = nil
		}
	}
	for i := start; i < end; i++ {
		c := row.Render[i]
		hl := row.HL[i]
		x := i - start
		if c < 32 || c == 127 {
			// control bytes become inverse glyphs without
			// disturbing the surrounding run state
			flush()
			spans = append(spans, Span{X: x, Text: []byte{ctrlGlyph(c)}, HL: hl, Invert: true})
			runStart = x + 1
			runHL = hl
			continue
		}
		if len(run) == 0 {
			runStart = x
			runHL = hl
		} else if hl != runHL {
			flush()
			runStart = x
			runHL = hl
		}
		run = append(run, c)
	}
	flush()
	return Line{Spans: spans}
}

func (e *Editor) composeStatus() (string, string) {
	name := e.doc.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[len(name)-20:]
	}
	modified := ""
	if e.doc.Dirty() {
		modified = " (modified)"
	}
	left := fmt.Sprintf("%s - %d lines%s", name, e.doc.NumRows(), modified)

	ft := "no ft"
	if lang := e.doc.Syntax(); lang != nil {
		ft = lang.Name
	}
	right := fmt.Sprintf("%s | %d/%d", ft, e.cy+1, e.doc.NumRows())
	if e.gitBranch != "" {
		right = e.gitBranch + " | " + right
	}
	return left, right
}

// Render composes one frame and writes it to the screen. The text
// area takes all but the last two lines; below it sit the status line
// and the transient message line.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	e.screenCols = w
	e.screenRows = h - 2
	if e.screenRows < 0 {
		e.screenRows = 0
	}
	e.scroll()

	frame := e.composeFrame()

	s.SetStyle(e.styleNormal)
	s.Clear()

	for y, line := range frame.Lines {
		for _, span := range line.Spans {
			style := e.styleFor(span.HL)
			if span.Invert {
				style = style.Reverse(true)
			}
			for i, c := range span.Text {
				s.SetContent(span.X+i, y, rune(c), nil, style)
			}
		}
	}

	statusY := h - 2
	if statusY >= 0 {
		e.drawStatus(s, w, statusY, frame)
	}
	msgY := h - 1
	if msgY >= 0 && msgY != statusY {
		drawText(s, 0, msgY, w, frame.Message, e.styleNormal)
	}

	cx, cy := frame.CursorX, frame.CursorY
	if cx >= 0 && cx < w && cy >= 0 && cy < e.screenRows {
		s.ShowCursor(cx, cy)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (e *Editor) drawStatus(s tcell.Screen, w, y int, frame Frame) {
	left := frame.StatusLeft
	right := frame.StatusRight
	if len(left) > w {
		left = left[:w]
	}
	x := 0
	for _, r := range left {
		s.SetContent(x, y, r, nil, e.styleStatus)
		x++
	}
	for x < w {
		if w-x == len(right) {
			for _, r := range right {
				s.SetContent(x, y, r, nil, e.styleStatus)
				x++
			}
			break
		}
		s.SetContent(x, y, ' ', nil, e.styleStatus)
		x++
	}
}

func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxW {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

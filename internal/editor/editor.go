package editor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"ked/internal/config"
	"ked/internal/logger"
)

const Version = "0.1.0"

const messageTimeout = 5 * time.Second

// Editor owns the document, the cursor in logical coordinates, the
// viewport offsets and the search prompt state. It is driven from a
// single event loop; nothing here is safe for concurrent use.
type Editor struct {
	doc   *Document
	table config.SyntaxTable
	cfg   config.Config

	cx, cy int // cursor, logical coordinates
	rx     int // derived display column, recomputed by scroll()

	rowOff, colOff         int
	screenRows, screenCols int

	statusMsg  string
	statusTime time.Time
	quitTimes  int
	gitBranch  string

	finding                  bool
	find                     finder
	findQuery                []byte
	savedCx, savedCy         int
	savedRowOff, savedColOff int

	styleNormal    tcell.Style
	styleStatus    tcell.Style
	styleMatch     tcell.Style
	styleComment   tcell.Style
	styleMLComment tcell.Style
	styleKeyword   tcell.Style
	styleType      tcell.Style
	styleString    tcell.Style
	styleNumber    tcell.Style
}

func New(cfg config.Config, table config.SyntaxTable) *Editor {
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	matchFg := parseColor(cfg.Theme.SearchMatchForeground, tcell.ColorBlack)
	matchBg := parseColor(cfg.Theme.SearchMatchBackground, tcell.ColorYellow)
	comment := parseColor(cfg.Theme.SyntaxComment, mainFg)
	mlComment := parseColor(cfg.Theme.SyntaxBlockComment, comment)
	keyword := parseColor(cfg.Theme.SyntaxKeyword, mainFg)
	typeKw := parseColor(cfg.Theme.SyntaxType, mainFg)
	str := parseColor(cfg.Theme.SyntaxString, mainFg)
	number := parseColor(cfg.Theme.SyntaxNumber, mainFg)

	return &Editor{
		doc:            NewDocument(cfg.Editor.TabStop),
		table:          table,
		cfg:            cfg,
		quitTimes:      cfg.Editor.QuitTimes,
		find:           newFinder(),
		styleNormal:    tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:    tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleMatch:     tcell.StyleDefault.Foreground(matchFg).Background(matchBg),
		styleComment:   tcell.StyleDefault.Foreground(comment).Background(mainBg),
		styleMLComment: tcell.StyleDefault.Foreground(mlComment).Background(mainBg),
		styleKeyword:   tcell.StyleDefault.Foreground(keyword).Background(mainBg),
		styleType:      tcell.StyleDefault.Foreground(typeKw).Background(mainBg),
		styleString:    tcell.StyleDefault.Foreground(str).Background(mainBg),
		styleNumber:    tcell.StyleDefault.Foreground(number).Background(mainBg),
	}
}

func (e *Editor) Document() *Document { return e.doc }
func (e *Editor) Cursor() (int, int)  { return e.cx, e.cy }
func (e *Editor) Offsets() (int, int) { return e.rowOff, e.colOff }

func (e *Editor) SetGitBranch(branch string) { e.gitBranch = branch }

// OpenFile reads a file into the document, one row per line, and
// selects the language by filename.
func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.doc.SetFilename(path)
	e.doc.Load(SplitLines(data))
	e.selectSyntax()
	e.cx, e.cy = 0, 0
	e.rowOff, e.colOff = 0, 0
	logger.Info("file opened", "path", path, "rows", e.doc.NumRows())
	return nil
}

func (e *Editor) selectSyntax() {
	e.doc.SetSyntax(e.table.Match(e.doc.Filename()))
}

// Save serializes the document and writes it out. Save failures are
// recoverable: the dirty flag stays set and the message line explains.
func (e *Editor) Save() {
	if e.doc.Filename() == "" {
		e.SetStatusMessage("no file name")
		return
	}
	buf := e.doc.Serialize()
	if err := os.WriteFile(e.doc.Filename(), buf, 0o644); err != nil {
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		logger.Error("save failed", "path", e.doc.Filename(), "error", err)
		return
	}
	e.doc.MarkClean()
	e.SetStatusMessage("%d bytes written to disk", len(buf))
	logger.Info("file saved", "path", e.doc.Filename(), "bytes", len(buf))
}

// SetStatusMessage puts a transient message on the message line; it
// expires after a fixed duration.
func (e *Editor) SetStatusMessage(format string, args ...interface{}) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// HandleKey processes one key event. Returns true when the editor
// should quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if e.finding {
		e.handleFindKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		if e.doc.Dirty() && e.quitTimes > 0 {
			e.SetStatusMessage("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
			e.quitTimes--
			return false
		}
		logger.Info("quit", "dirty", e.doc.Dirty())
		return true
	case tcell.KeyCtrlS:
		e.Save()
	case tcell.KeyCtrlF:
		e.startFind()
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyTab:
		e.insertByte('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.deleteLeft()
	case tcell.KeyDelete:
		e.moveCursor(tcell.KeyRight)
		e.deleteLeft()
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		e.moveCursor(ev.Key())
	case tcell.KeyHome:
		e.cx = 0
	case tcell.KeyEnd:
		if row := e.doc.Row(e.cy); row != nil {
			e.cx = len(row.Chars)
		}
	case tcell.KeyPgUp, tcell.KeyPgDn:
		e.movePage(ev.Key())
	case tcell.KeyEscape, tcell.KeyCtrlL:
		// nothing to do; tcell repaints every frame
	case tcell.KeyRune:
		e.insertRune(ev.Rune())
	}

	e.quitTimes = e.cfg.Editor.QuitTimes
	return false
}

func (e *Editor) insertRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for i := 0; i < n; i++ {
		e.insertByte(buf[i])
	}
}

func (e *Editor) insertByte(c byte) {
	if e.cy == e.doc.NumRows() {
		// cursor rests on the virtual row past EOF
		e.doc.InsertRow(e.doc.NumRows(), nil)
	}
	e.doc.InsertChar(e.cy, e.cx, c)
	e.cx++
}

func (e *Editor) insertNewline() {
	if e.cx == 0 {
		e.doc.InsertRow(e.cy, nil)
	} else {
		e.doc.SplitRow(e.cy, e.cx)
	}
	e.cy++
	e.cx = 0
}

// deleteLeft is backspace: remove the byte before the cursor, joining
// into the previous row at column 0. At the document start it is a
// no-op.
func (e *Editor) deleteLeft() {
	if e.cy == e.doc.NumRows() {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}
	if e.cx > 0 {
		e.doc.DeleteChar(e.cy, e.cx-1)
		e.cx--
		return
	}
	prev := e.doc.Row(e.cy - 1)
	e.cx = len(prev.Chars)
	e.doc.JoinRowIntoPrevious(e.cy)
	e.cy--
}

func (e *Editor) moveCursor(key tcell.Key) {
	row := e.doc.Row(e.cy)

	switch key {
	case tcell.KeyLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.doc.Row(e.cy).Chars)
		}
	case tcell.KeyRight:
		if row != nil && e.cx < len(row.Chars) {
			e.cx++
		} else if row != nil && e.cx == len(row.Chars) {
			e.cy++
			e.cx = 0
		}
	case tcell.KeyUp:
		if e.cy != 0 {
			e.cy--
		}
	case tcell.KeyDown:
		if e.cy < e.doc.NumRows() {
			e.cy++
		}
	}

	// snap to the end of the destination row
	rowLen := 0
	if row := e.doc.Row(e.cy); row != nil {
		rowLen = len(row.Chars)
	}
	if e.cx > rowLen {
		e.cx = rowLen
	}
}

func (e *Editor) movePage(key tcell.Key) {
	if key == tcell.KeyPgUp {
		e.cy = e.rowOff
	} else {
		e.cy = e.rowOff + e.screenRows - 1
		if e.cy > e.doc.NumRows() {
			e.cy = e.doc.NumRows()
		}
	}
	arrow := tcell.KeyDown
	if key == tcell.KeyPgUp {
		arrow = tcell.KeyUp
	}
	for i := 0; i < e.screenRows; i++ {
		e.moveCursor(arrow)
	}
}

// scroll recomputes the display cursor and clamps the viewport offsets
// so the cursor always falls inside the visible window.
func (e *Editor) scroll() {
	e.rx = 0
	if row := e.doc.Row(e.cy); row != nil {
		e.rx = row.CxToRx(e.cx, e.doc.TabStop())
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.cy >= e.rowOff+e.screenRows {
		e.rowOff = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOff {
		e.colOff = e.rx
	}
	if e.rx >= e.colOff+e.screenCols {
		e.colOff = e.rx - e.screenCols + 1
	}
	if e.rowOff < 0 {
		e.rowOff = 0
	}
	if e.colOff < 0 {
		e.colOff = 0
	}
}

// startFind opens the search prompt, snapshotting cursor and viewport
// so cancel can restore them.
func (e *Editor) startFind() {
	e.savedCx, e.savedCy = e.cx, e.cy
	e.savedRowOff, e.savedColOff = e.rowOff, e.colOff
	e.finding = true
	e.find = newFinder()
	e.findQuery = e.findQuery[:0]
	e.showFindPrompt()
}

func (e *Editor) showFindPrompt() {
	e.SetStatusMessage("Search: %s (Use ESC/Arrows/Enter)", string(e.findQuery))
}

// handleFindKey drives the search state machine: Esc cancels and
// restores everything, Enter commits at the current match, arrows set
// the direction and advance, anything printable edits the query.
func (e *Editor) handleFindKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.find.reset(e.doc)
		e.cx, e.cy = e.savedCx, e.savedCy
		e.rowOff, e.colOff = e.savedRowOff, e.savedColOff
		e.finding = false
		e.SetStatusMessage("")
		return
	case tcell.KeyEnter:
		e.find.reset(e.doc)
		e.finding = false
		e.SetStatusMessage("")
		return
	case tcell.KeyRight, tcell.KeyDown:
		e.find.forward = true
		e.findStep()
	case tcell.KeyLeft, tcell.KeyUp:
		e.find.forward = false
		e.findStep()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.findQuery) > 0 {
			e.findQuery = e.findQuery[:len(e.findQuery)-1]
		}
		e.find.edit(e.findQuery)
		e.findStep()
	case tcell.KeyRune:
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], ev.Rune())
		e.findQuery = append(e.findQuery, buf[:n]...)
		e.find.edit(e.findQuery)
		e.findStep()
	}
	e.showFindPrompt()
}

func (e *Editor) findStep() {
	m, ok := e.find.step(e.doc)
	if !ok {
		return
	}
	e.cy = m.row
	e.cx = m.cx
	// push the offset past EOF so the next scroll pass puts the
	// matched row at the top of the window
	e.rowOff = e.doc.NumRows()
}

// CapturePosition reports cursor and viewport for session persistence.
func (e *Editor) CapturePosition() (cx, cy, rowOff, colOff int) {
	return e.cx, e.cy, e.rowOff, e.colOff
}

// RestorePosition places cursor and viewport from a saved session,
// clamped to the current document.
func (e *Editor) RestorePosition(cx, cy, rowOff, colOff int) {
	if cy < 0 {
		cy = 0
	}
	if cy > e.doc.NumRows() {
		cy = e.doc.NumRows()
	}
	e.cy = cy
	rowLen := 0
	if row := e.doc.Row(cy); row != nil {
		rowLen = len(row.Chars)
	}
	if cx < 0 {
		cx = 0
	}
	if cx > rowLen {
		cx = rowLen
	}
	e.cx = cx
	if rowOff < 0 {
		rowOff = 0
	}
	if colOff < 0 {
		colOff = 0
	}
	e.rowOff = rowOff
	e.colOff = colOff
}

func (e *Editor) styleFor(hl Highlight) tcell.Style {
	switch hl {
	case HLComment:
		return e.styleComment
	case HLMLComment:
		return e.styleMLComment
	case HLKeyword:
		return e.styleKeyword
	case HLType:
		return e.styleType
	case HLString:
		return e.styleString
	case HLNumber:
		return e.styleNumber
	case HLMatch:
		return e.styleMatch
	default:
		return e.styleNormal
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	if c, ok := tcell.ColorNames[strings.ToLower(name)]; ok {
		return c
	}
	return fallback
}

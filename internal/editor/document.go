package editor

import (
	"bytes"

	"ked/internal/config"
)

// Document owns the ordered row sequence, the dirty counter and the
// detected language. Every structural mutation keeps row indices
// contiguous, re-projects the affected rows and re-runs the
// highlighter from the mutation point.
type Document struct {
	rows     []*Row
	dirty    int
	filename string
	syntax   *config.Language
	tabStop  int
}

func NewDocument(tabStop int) *Document {
	if tabStop < 1 {
		tabStop = 1
	}
	return &Document{tabStop: tabStop}
}

func (d *Document) NumRows() int             { return len(d.rows) }
func (d *Document) Dirty() bool              { return d.dirty > 0 }
func (d *Document) Filename() string         { return d.filename }
func (d *Document) Syntax() *config.Language { return d.syntax }
func (d *Document) TabStop() int             { return d.tabStop }

// Row returns the row at index i, or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

func (d *Document) SetFilename(name string) { d.filename = name }

// SetSyntax switches the language and re-highlights every row.
func (d *Document) SetSyntax(lang *config.Language) {
	d.syntax = lang
	d.highlightAll()
}

// highlightAll scans every row top to bottom, carrying the
// block-comment state through the whole document.
func (d *Document) highlightAll() {
	prevOpen := false
	for _, row := range d.rows {
		prevOpen = scanRow(row, d.syntax, prevOpen)
		row.OpenComment = prevOpen
	}
}

// Load replaces the document content with the given newline-stripped
// lines. An empty input produces an empty document.
func (d *Document) Load(lines [][]byte) {
	d.rows = d.rows[:0]
	for _, line := range lines {
		row := newRow(len(d.rows), line)
		row.updateRender(d.tabStop)
		d.rows = append(d.rows, row)
	}
	d.highlightAll()
	d.dirty = 0
}

// Serialize flattens the document to the byte buffer written on save:
// every row's logical text followed by a single '\n'.
func (d *Document) Serialize() []byte {
	total := 0
	for _, row := range d.rows {
		total += len(row.Chars) + 1
	}
	buf := make([]byte, 0, total)
	for _, row := range d.rows {
		buf = append(buf, row.Chars...)
		buf = append(buf, '\n')
	}
	return buf
}

// MarkClean resets the dirty counter after a successful save.
func (d *Document) MarkClean() { d.dirty = 0 }

// InsertRow inserts a new row at the given index; out-of-range indices
// insert at the nearest boundary.
func (d *Document) InsertRow(at int, text []byte) {
	if at < 0 {
		at = 0
	}
	if at > len(d.rows) {
		at = len(d.rows)
	}
	row := newRow(at, text)
	row.updateRender(d.tabStop)
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = row
	d.renumber(at)
	d.dirty++
	d.highlightFrom(at)
}

// DeleteRow removes the row at the given index; out-of-range indices
// are a no-op.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = append(d.rows[:at], d.rows[at+1:]...)
	d.renumber(at)
	d.dirty++
	d.highlightFrom(at)
}

// InsertChar inserts one byte into a row's logical text; the column is
// clamped to the row bounds.
func (d *Document) InsertChar(rowIdx, col int, c byte) {
	row := d.Row(rowIdx)
	if row == nil {
		return
	}
	row.insertChar(col, c)
	d.touch(rowIdx)
}

// DeleteChar removes the byte at col; out-of-range columns are a no-op.
func (d *Document) DeleteChar(rowIdx, col int) {
	row := d.Row(rowIdx)
	if row == nil {
		return
	}
	if !row.deleteChar(col) {
		return
	}
	d.touch(rowIdx)
}

// AppendText appends raw text to a row's logical text (used when
// joining rows).
func (d *Document) AppendText(rowIdx int, text []byte) {
	row := d.Row(rowIdx)
	if row == nil {
		return
	}
	row.appendBytes(text)
	d.touch(rowIdx)
}

// SplitRow breaks a row at col: the tail moves to a new row inserted
// directly below.
func (d *Document) SplitRow(rowIdx, col int) {
	row := d.Row(rowIdx)
	if row == nil {
		return
	}
	if col < 0 {
		col = 0
	}
	if col > len(row.Chars) {
		col = len(row.Chars)
	}
	tail := append([]byte(nil), row.Chars[col:]...)
	row.Chars = row.Chars[:col]
	row.updateRender(d.tabStop)
	d.InsertRow(rowIdx+1, tail)
	// InsertRow re-highlights from rowIdx+1; the truncated row needs
	// its own pass too.
	d.highlightFrom(rowIdx)
	d.dirty++
}

// JoinRowIntoPrevious appends a row's text to the row above and
// deletes it. Joining the first row is a no-op.
func (d *Document) JoinRowIntoPrevious(rowIdx int) {
	if rowIdx <= 0 || rowIdx >= len(d.rows) {
		return
	}
	d.AppendText(rowIdx-1, d.rows[rowIdx].Chars)
	d.DeleteRow(rowIdx)
}

func (d *Document) renumber(from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(d.rows); i++ {
		d.rows[i].Index = i
	}
}

// touch re-projects and re-highlights a row after a content edit.
func (d *Document) touch(rowIdx int) {
	d.rows[rowIdx].updateRender(d.tabStop)
	d.dirty++
	d.highlightFrom(rowIdx)
}

// highlightFrom re-runs the highlighter starting at row `at` and
// carries the block-comment state downward. The row after the
// mutation point is always rescanned (its predecessor may be a
// different row now); past that the cascade stops at the first row
// whose derived OpenComment did not change, or at document end.
func (d *Document) highlightFrom(at int) {
	if at < 0 {
		at = 0
	}
	for i := at; i < len(d.rows); i++ {
		row := d.rows[i]
		prevOpen := i > 0 && d.rows[i-1].OpenComment
		open := scanRow(row, d.syntax, prevOpen)
		changed := row.OpenComment != open
		row.OpenComment = open
		if i > at && !changed {
			break
		}
	}
}

// SplitLines breaks file data into newline-stripped lines the way the
// loader wants them: \r\n and \n both end a line, and a trailing
// newline does not produce a final empty row.
func SplitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	lines := bytes.Split(data, []byte("\n"))
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if len(line) > 0 && line[len(line)-1] == '\r' {
			lines[i] = line[:len(line)-1]
		}
	}
	return lines
}

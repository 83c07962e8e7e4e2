package editor

import "bytes"

// finder is the incremental-search state machine: the query, the scan
// direction, the last matched row and the one-row snapshot of style
// marks taken before the match overlay was applied.
type finder struct {
	query      []byte
	lastMatch  int
	forward    bool
	savedHLRow int
	savedHL    []Highlight
}

func newFinder() finder {
	return finder{lastMatch: -1, forward: true, savedHLRow: -1}
}

// restore undoes the previous match overlay, if any. Safe to call
// repeatedly; it is a no-op once the snapshot has been restored.
func (f *finder) restore(doc *Document) {
	if f.savedHLRow < 0 {
		return
	}
	if row := doc.Row(f.savedHLRow); row != nil && len(row.HL) == len(f.savedHL) {
		copy(row.HL, f.savedHL)
	}
	f.savedHLRow = -1
	f.savedHL = nil
}

// match holds the landing position of a successful scan step, in
// logical coordinates plus the matched display span.
type match struct {
	row     int
	cx      int
	rxStart int
	length  int
}

// step restores prior highlighting, then scans rows circularly from
// one past the last match in the current direction for the first row
// whose render text contains the query. On a hit it overlays the
// match span and snapshots the row's previous marks. Returns the
// match and true, or false when the query is empty or absent.
func (f *finder) step(doc *Document) (match, bool) {
	f.restore(doc)
	if len(f.query) == 0 || doc.NumRows() == 0 {
		return match{}, false
	}
	if f.lastMatch == -1 {
		f.forward = true
	}
	dir := 1
	if !f.forward {
		dir = -1
	}
	current := f.lastMatch
	for i := 0; i < doc.NumRows(); i++ {
		current += dir
		if current == -1 {
			current = doc.NumRows() - 1
		} else if current == doc.NumRows() {
			current = 0
		}
		row := doc.Row(current)
		idx := bytes.Index(row.Render, f.query)
		if idx < 0 {
			continue
		}
		f.lastMatch = current
		f.savedHLRow = current
		f.savedHL = append([]Highlight(nil), row.HL...)
		for j := 0; j < len(f.query) && idx+j < len(row.HL); j++ {
			row.HL[idx+j] = HLMatch
		}
		return match{
			row:     current,
			cx:      row.RxToCx(idx, doc.TabStop()),
			rxStart: idx,
			length:  len(f.query),
		}, true
	}
	return match{}, false
}

// edit replaces the query and resets the scan origin so the next step
// starts from the top of the circular order again.
func (f *finder) edit(query []byte) {
	f.query = append(f.query[:0], query...)
	f.lastMatch = -1
	f.forward = true
}

// reset drops all search state; the caller restores cursor and
// viewport if the search was cancelled.
func (f *finder) reset(doc *Document) {
	f.restore(doc)
	f.query = f.query[:0]
	f.lastMatch = -1
	f.forward = true
}

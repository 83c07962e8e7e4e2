package editor

// Row is the atomic unit of text. Chars is the logical byte sequence
// that gets edited and saved; Render is the tab-expanded projection
// used for layout, search and highlighting; HL carries one style mark
// per Render byte.
type Row struct {
	Index       int
	Chars       []byte
	Render      []byte
	HL          []Highlight
	OpenComment bool
}

func newRow(index int, text []byte) *Row {
	r := &Row{Index: index}
	r.Chars = append(r.Chars, text...)
	return r
}

// updateRender rebuilds Render from Chars. A tab advances to the next
// multiple of tabStop; every other byte maps one to one.
func (r *Row) updateRender(tabStop int) {
	if tabStop < 1 {
		tabStop = 1
	}
	render := make([]byte, 0, len(r.Chars))
	for _, c := range r.Chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%tabStop != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}
	r.Render = render
}

// CxToRx maps a logical column to its display column.
func (r *Row) CxToRx(cx, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	rx := 0
	for j := 0; j < cx && j < len(r.Chars); j++ {
		if r.Chars[j] == '\t' {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx is the inverse mapping: it walks logical bytes accumulating
// display width and returns the first logical column whose expansion
// reaches or exceeds rx.
func (r *Row) RxToCx(rx, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	curRx := 0
	for cx := 0; cx < len(r.Chars); cx++ {
		if r.Chars[cx] == '\t' {
			curRx += (tabStop - 1) - (curRx % tabStop)
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return len(r.Chars)
}

func (r *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(r.Chars) {
		at = len(r.Chars)
	}
	r.Chars = append(r.Chars, 0)
	copy(r.Chars[at+1:], r.Chars[at:])
	r.Chars[at] = c
}

func (r *Row) deleteChar(at int) bool {
	if at < 0 || at >= len(r.Chars) {
		return false
	}
	r.Chars = append(r.Chars[:at], r.Chars[at+1:]...)
	return true
}

func (r *Row) appendBytes(text []byte) {
	r.Chars = append(r.Chars, text...)
}

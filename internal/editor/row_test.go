package editor

import (
	"bytes"
	"testing"
)

func TestTabExpansion(t *testing.T) {
	r := newRow(0, []byte("\t"))
	r.updateRender(8)
	if got := string(r.Render); got != "        " {
		t.Fatalf("render = %q (%d bytes), want 8 spaces", got, len(got))
	}

	r = newRow(0, []byte("abcde\t"))
	r.updateRender(8)
	if got := string(r.Render); got != "abcde   " {
		t.Fatalf("render = %q (%d bytes), want abcde + 3 spaces", got, len(got))
	}

	r = newRow(0, []byte("a\tb"))
	r.updateRender(8)
	if got := string(r.Render); got != "a       b" {
		t.Fatalf("render = %q, want a + 7 spaces + b", got)
	}
}

func TestTabExpansionNonDefaultStop(t *testing.T) {
	r := newRow(0, []byte("a\tb"))
	r.updateRender(4)
	if got := string(r.Render); got != "a   b" {
		t.Fatalf("render = %q, want a + 3 spaces + b", got)
	}
}

func TestCxToRx(t *testing.T) {
	r := newRow(0, []byte("a\tb"))
	r.updateRender(8)
	for cx, want := range []int{0, 1, 8, 9} {
		if got := r.CxToRx(cx, 8); got != want {
			t.Fatalf("CxToRx(%d) = %d, want %d", cx, got, want)
		}
	}
}

func TestRxToCx(t *testing.T) {
	r := newRow(0, []byte("a\tb"))
	r.updateRender(8)
	cases := []struct{ rx, cx int }{
		{0, 0},
		{1, 1}, // anywhere inside the tab expansion
		{4, 1},
		{7, 1},
		{8, 2},
		{100, 3}, // past row end clamps to row length
	}
	for _, c := range cases {
		if got := r.RxToCx(c.rx, 8); got != c.cx {
			t.Fatalf("RxToCx(%d) = %d, want %d", c.rx, got, c.cx)
		}
	}
}

func TestColumnMappingRoundTrip(t *testing.T) {
	r := newRow(0, []byte("\tfoo\tbar\t1"))
	r.updateRender(8)
	for cx := 0; cx <= len(r.Chars); cx++ {
		rx := r.CxToRx(cx, 8)
		back := r.RxToCx(rx, 8)
		if back2 := r.CxToRx(back, 8); back2 < rx {
			t.Fatalf("round trip cx=%d: rx=%d back=%d reprojects to %d < %d", cx, rx, back, back2, rx)
		}
	}
}

func TestRowInsertCharClamps(t *testing.T) {
	r := newRow(0, []byte("ab"))
	r.insertChar(99, 'c')
	if got := string(r.Chars); got != "abc" {
		t.Fatalf("chars = %q, want abc", got)
	}
	r.insertChar(-1, 'x')
	if got := string(r.Chars); got != "abcx" {
		t.Fatalf("chars = %q, want abcx", got)
	}
	r.insertChar(0, 'y')
	if got := string(r.Chars); got != "yabcx" {
		t.Fatalf("chars = %q, want yabcx", got)
	}
}

func TestRowDeleteCharBounds(t *testing.T) {
	r := newRow(0, []byte("ab"))
	if r.deleteChar(2) {
		t.Fatalf("deleteChar(2) = true, want false")
	}
	if r.deleteChar(-1) {
		t.Fatalf("deleteChar(-1) = true, want false")
	}
	if !r.deleteChar(0) {
		t.Fatalf("deleteChar(0) = false, want true")
	}
	if !bytes.Equal(r.Chars, []byte("b")) {
		t.Fatalf("chars = %q, want b", r.Chars)
	}
}

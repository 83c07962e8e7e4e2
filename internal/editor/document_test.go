package editor

import (
	"bytes"
	"testing"

	"ked/internal/config"
)

func newTestDoc(lines ...string) *Document {
	d := NewDocument(8)
	raw := make([][]byte, len(lines))
	for i, line := range lines {
		raw[i] = []byte(line)
	}
	d.Load(raw)
	return d
}

func goLang(t *testing.T) *config.Language {
	t.Helper()
	lang := config.Builtin().Match("x.go")
	if lang == nil {
		t.Fatalf("builtin table has no go entry")
	}
	return lang
}

func checkInvariant(t *testing.T, d *Document) {
	t.Helper()
	for i := 0; i < d.NumRows(); i++ {
		row := d.Row(i)
		if len(row.HL) != len(row.Render) {
			t.Fatalf("row %d: len(HL)=%d len(Render)=%d", i, len(row.HL), len(row.Render))
		}
		if row.Index != i {
			t.Fatalf("row %d has Index %d", i, row.Index)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	d := newTestDoc()
	if d.NumRows() != 0 {
		t.Fatalf("NumRows = %d, want 0", d.NumRows())
	}
	if d.Dirty() {
		t.Fatalf("fresh document is dirty")
	}
	if got := d.Serialize(); len(got) != 0 {
		t.Fatalf("Serialize = %q, want empty", got)
	}
}

func TestSerializeSingleRow(t *testing.T) {
	d := newTestDoc("abc")
	if got := d.Serialize(); !bytes.Equal(got, []byte("abc\n")) {
		t.Fatalf("Serialize = %q, want %q", got, "abc\n")
	}
}

func TestInsertRowClamps(t *testing.T) {
	d := newTestDoc("a", "b")
	d.InsertRow(99, []byte("tail"))
	if got := string(d.Row(2).Chars); got != "tail" {
		t.Fatalf("row 2 = %q, want tail", got)
	}
	d.InsertRow(-5, []byte("head"))
	if got := string(d.Row(0).Chars); got != "head" {
		t.Fatalf("row 0 = %q, want head", got)
	}
	if !d.Dirty() {
		t.Fatalf("document not dirty after inserts")
	}
	checkInvariant(t, d)
}

func TestDeleteRowOutOfRangeNoop(t *testing.T) {
	d := newTestDoc("a")
	d.DeleteRow(5)
	d.DeleteRow(-1)
	if d.NumRows() != 1 {
		t.Fatalf("NumRows = %d, want 1", d.NumRows())
	}
	d.DeleteRow(0)
	if d.NumRows() != 0 {
		t.Fatalf("NumRows = %d, want 0", d.NumRows())
	}
}

func TestTypingSequenceSerializes(t *testing.T) {
	d := newTestDoc("")
	text := "hello, world"
	for i := 0; i < len(text); i++ {
		d.InsertChar(0, i, text[i])
	}
	if got := d.Serialize(); !bytes.Equal(got, []byte(text+"\n")) {
		t.Fatalf("Serialize = %q, want %q", got, text+"\n")
	}
	checkInvariant(t, d)
}

func TestSplitThenJoinRoundTrip(t *testing.T) {
	const original = "alpha\tbeta gamma"
	for k := 0; k <= len(original); k++ {
		d := newTestDoc(original)
		d.SplitRow(0, k)
		if d.NumRows() != 2 {
			t.Fatalf("k=%d: NumRows = %d, want 2", k, d.NumRows())
		}
		checkInvariant(t, d)
		d.JoinRowIntoPrevious(1)
		if d.NumRows() != 1 {
			t.Fatalf("k=%d: NumRows = %d after join, want 1", k, d.NumRows())
		}
		if got := string(d.Row(0).Chars); got != original {
			t.Fatalf("k=%d: row = %q, want %q", k, got, original)
		}
		checkInvariant(t, d)
	}
}

func TestJoinFirstRowNoop(t *testing.T) {
	d := newTestDoc("a", "b")
	d.JoinRowIntoPrevious(0)
	if d.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", d.NumRows())
	}
}

func TestHighlightInvariantAcrossEdits(t *testing.T) {
	d := newTestDoc("func main() {", "\tx := 42 /* note", "\treturn", "}")
	d.SetFilename("main.go")
	d.SetSyntax(goLang(t))
	checkInvariant(t, d)

	d.InsertChar(1, 5, 'y')
	checkInvariant(t, d)
	d.DeleteChar(0, 0)
	checkInvariant(t, d)
	d.SplitRow(1, 3)
	checkInvariant(t, d)
	d.JoinRowIntoPrevious(2)
	checkInvariant(t, d)
	d.AppendText(3, []byte(" */"))
	checkInvariant(t, d)
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"abc\n", []string{"abc"}},
		{"abc", []string{"abc"}},
		{"a\r\nb\n", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, c := range cases {
		got := SplitLines([]byte(c.in))
		if len(got) != len(c.want) {
			t.Fatalf("SplitLines(%q) = %d lines, want %d", c.in, len(got), len(c.want))
		}
		for i := range got {
			if string(got[i]) != c.want[i] {
				t.Fatalf("SplitLines(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestLoadThenSerializeRoundTrip(t *testing.T) {
	data := []byte("one\ntwo\nthree\n")
	d := NewDocument(8)
	d.Load(SplitLines(data))
	if got := d.Serialize(); !bytes.Equal(got, data) {
		t.Fatalf("Serialize = %q, want %q", got, data)
	}
}

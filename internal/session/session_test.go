package session

import (
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	m.SetFileState("/tmp/a.go", FileState{CursorRow: 7, CursorCol: 3, ScrollY: 5})
	if err := m.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	m2, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	state, ok := m2.GetFileState("/tmp/a.go")
	if !ok {
		t.Fatalf("GetFileState missing entry")
	}
	if state.CursorRow != 7 || state.CursorCol != 3 || state.ScrollY != 5 {
		t.Fatalf("state = %+v, want 7/3/5", state)
	}
}

func TestSessionMissingEntry(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	if _, ok := m.GetFileState("/nope"); ok {
		t.Fatalf("GetFileState = ok, want miss")
	}
}

func TestSaveSkipsWhenClean(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !m.session.LastSaved.IsZero() {
		t.Fatalf("LastSaved set on clean save")
	}
}

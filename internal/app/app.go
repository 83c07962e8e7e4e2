package app

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"ked/internal/config"
	"ked/internal/editor"
	"ked/internal/gitinfo"
	"ked/internal/logger"
	"ked/internal/session"
)

// App is the top-level runtime for ked.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()

	// the editor works without a log file; helpers no-op when unset
	if err := logger.Init(os.Getenv("KED_DEBUG") != ""); err == nil {
		defer logger.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	table, err := config.LoadSyntax()
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	sm, err := session.NewManager()
	if err != nil {
		sm = nil
		logger.Warn("session disabled", "error", err)
	}

	ed := editor.New(cfg, table)

	var openPath string
	if len(a.args) > 0 {
		openPath = a.args[0]
		if abs, err := filepath.Abs(openPath); err == nil {
			openPath = abs
		}
		if err := ed.OpenFile(openPath); err != nil {
			return err
		}
		if sm != nil {
			if state, ok := sm.GetFileState(openPath); ok {
				ed.RestorePosition(state.CursorCol, state.CursorRow, state.ScrollY, state.ScrollX)
			}
		}
		ed.SetGitBranch(gitinfo.Branch(openPath))
	}

	ed.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	// periodic repaint so the message line expires without input
	stopTick := make(chan struct{})
	defer close(stopTick)
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopTick:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		ed.Render(s)
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				if sm != nil && openPath != "" {
					cx, cy, rowOff, colOff := ed.CapturePosition()
					sm.SetFileState(openPath, session.FileState{
						CursorRow: cy,
						CursorCol: cx,
						ScrollY:   rowOff,
						ScrollX:   colOff,
					})
					_ = sm.Save()
				}
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			// repaint only
		case nil:
			return nil
		}
	}
}

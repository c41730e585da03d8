package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/comfy-wars/internal/abi"
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/game"
	"github.com/vovakirdan/comfy-wars/internal/host"
)

type session struct {
	t     *testing.T
	host  *host.Host
	model Model
	now   time.Time
}

func newSession(t *testing.T) *session {
	t.Helper()
	quiet := log.New(io.Discard)
	h, err := host.New(host.StaticLoader{}, game.UnitID, host.WithWatch(false), host.WithLogger(quiet))
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	t.Cleanup(func() { h.Close() })

	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 14, TickRate: 60}
	return &session{
		t:     t,
		host:  h,
		model: NewModel(h, cfg, nil, quiet),
		now:   time.Unix(1000, 0),
	}
}

func (s *session) send(msg tea.Msg) {
	s.t.Helper()
	next, _ := s.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		s.t.Fatalf("Update returned %T", next)
	}
	s.model = m
}

func (s *session) key(k tea.KeyType, times int) {
	for range times {
		s.send(tea.KeyMsg{Type: k})
	}
}

func (s *session) tick() {
	s.now = s.now.Add(time.Second / 60)
	s.send(TickMsg(s.now))
}

func (s *session) state() *game.PersistentState {
	return abi.As[game.PersistentState](s.host.Persistent())
}

func TestModelRendersGame(t *testing.T) {
	s := newSession(t)
	s.tick()

	view := s.model.View()
	if !strings.Contains(view, "red turn") {
		t.Errorf("view lacks the HUD:\n%s", view)
	}
	if !strings.Contains(view, "ii") || !strings.Contains(view, "TT") {
		t.Errorf("view lacks unit glyphs:\n%s", view)
	}
	if status, failed := s.model.Status(); failed || !strings.Contains(status, game.UnitID) {
		t.Errorf("status = %q (error %v)", status, failed)
	}
}

func TestModelSelectsWithKeys(t *testing.T) {
	s := newSession(t)
	s.tick()

	// Red infantry stands on (2,7).
	s.key(tea.KeyRight, 2)
	s.key(tea.KeyDown, 7)
	s.key(tea.KeySpace, 1)
	s.tick()

	sel := s.state().Selection
	if sel.State != game.Selected {
		t.Fatalf("selection = %#v, want Selected", s.state().Selection)
	}
	if a, _ := s.state().Actors.Get(sel.Key); a.Pos != core.P(2, 7) {
		t.Errorf("selected actor at %v, want (2,7)", a.Pos)
	}

	s.key(tea.KeyEsc, 1)
	s.tick()
	if s.state().Selection.State != game.SelectNone {
		t.Errorf("selection after esc = %#v, want none", s.state().Selection)
	}
}

func TestModelMouseSelects(t *testing.T) {
	s := newSession(t)
	// Tile (5,8) is columns 10-11, row 8.
	s.send(tea.MouseMsg{X: 11, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	s.tick()

	sel := s.state().Selection
	if sel.State != game.Selected {
		t.Fatalf("selection = %#v, want Selected", s.state().Selection)
	}
	if a, _ := s.state().Actors.Get(sel.Key); a.Kind != game.Tank {
		t.Errorf("selected %v, want the red tank", a.Kind)
	}
}

func TestModelEndTurnAndQuit(t *testing.T) {
	s := newSession(t)
	s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	s.tick()
	if s.state().Turn != game.Blue {
		t.Errorf("turn = %v, want blue", s.state().Turn)
	}

	next, cmd := s.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if view := next.(Model).View(); view != "" {
		t.Errorf("view after quit = %q", view)
	}
}

func TestModelResize(t *testing.T) {
	s := newSession(t)
	s.send(tea.WindowSizeMsg{Width: 50, Height: 20})
	if w, h := s.model.Backend().Screen().Width(), s.model.Backend().Screen().Height(); w != 50 || h != 20-footerRows {
		t.Errorf("screen = %dx%d, want 50x%d", w, h, 20-footerRows)
	}
}

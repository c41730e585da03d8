package game

import (
	"testing"

	"github.com/vovakirdan/comfy-wars/internal/abi"
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/platform/headless"
	"github.com/vovakirdan/comfy-wars/internal/sched"
)

type session struct {
	ctx *headless.Context
	s   *PersistentState
	f   *FleetingState
}

func newSession(t *testing.T) *session {
	s := newState(t, []string{"111111", "111111"}, nil,
		entity("red", "infantry", 0, 0),
		entity("blue", "infantry", 5, 1),
	)
	return &session{ctx: headless.New(1.0 / 60), s: s, f: NewFleetingState()}
}

// frame runs one frame with the pointer on p and the given buttons pressed.
func (ss *session) frame(p core.Pos, buttons ...core.Button) []headless.Command {
	ss.ctx.PointAt(p)
	ss.ctx.Press(buttons...)
	Frame(ss.ctx, ss.s, ss.f)
	ss.ctx.EndFrame()
	return ss.ctx.Commands()
}

func count(cmds []headless.Command, z int, kind headless.Kind) int {
	n := 0
	for _, c := range cmds {
		if c.Z == z && c.Kind == kind {
			n++
		}
	}
	return n
}

func TestSelectMoveConfirm(t *testing.T) {
	ss := newSession(t)
	red := mustActorAt(t, ss.s, core.P(0, 0))

	cmds := ss.frame(core.P(0, 0), core.MouseLeft)
	if !ss.s.Selection.Is(Selected, red) {
		t.Fatalf("Selection = %#v, want Selected", ss.s.Selection)
	}
	if got := count(cmds, zActors, headless.KindTexture); got != 2 {
		t.Errorf("actors drawn = %d, want 2", got)
	}

	cmds = ss.frame(core.P(2, 0))
	if count(cmds, zRange, headless.KindRect) == 0 {
		t.Error("no range overlay while aiming")
	}
	if got := count(cmds, zPath, headless.KindTexture); got != 2 {
		t.Errorf("path arrows = %d, want 2", got)
	}

	ss.frame(core.P(2, 0), core.MouseLeft)
	if ss.s.Selection.State != Moving {
		t.Fatalf("Selection = %v, want Moving", ss.s.Selection)
	}
	if ss.f.Queue.Len() != 1 {
		t.Fatalf("queued tasks = %d, want 1", ss.f.Queue.Len())
	}

	for i := 0; i < 300; i++ {
		if ss.s.Selection.State == Confirm {
			break
		}
		ss.frame(core.P(2, 0))
	}
	if ss.s.Selection.State != Confirm {
		t.Fatalf("Selection = %v, want Confirm", ss.s.Selection)
	}

	ss.frame(core.P(2, 0), core.ButtonConfirm)
	a, _ := ss.s.Actors.Value(red)
	if a.Pos != core.P(2, 0) || !a.HasMoved {
		t.Errorf("actor = %+v, want moved to (2,0)", a)
	}
	if ss.s.Selection.State != SelectNone {
		t.Errorf("Selection = %v, want SelectNone", ss.s.Selection)
	}

	// A unit that has moved cannot be selected again this turn.
	ss.frame(core.P(2, 0), core.MouseLeft)
	if ss.s.Selection.State != SelectNone {
		t.Errorf("moved unit selected again: %v", ss.s.Selection)
	}
}

func TestCancelAndForeignUnits(t *testing.T) {
	ss := newSession(t)

	ss.frame(core.P(5, 1), core.MouseLeft)
	if ss.s.Selection.State != SelectNone {
		t.Fatalf("selected a unit of the other team: %v", ss.s.Selection)
	}

	ss.frame(core.P(0, 0), core.MouseLeft)
	ss.frame(core.P(1, 0), core.MouseRight)
	if ss.s.Selection.State != SelectNone {
		t.Errorf("right click did not cancel: %v", ss.s.Selection)
	}
	if ss.f.Queue.Len() != 0 {
		t.Error("cancel queued a move")
	}
}

func TestEndTurnButton(t *testing.T) {
	ss := newSession(t)
	ss.frame(core.P(0, 0), core.ButtonEndTurn)
	if ss.s.Turn != Blue {
		t.Fatalf("Turn = %s, want blue", ss.s.Turn)
	}
	ss.frame(core.P(5, 1), core.MouseLeft)
	if ss.s.Selection.State != Selected {
		t.Errorf("blue unit not selectable on blue's turn: %v", ss.s.Selection)
	}
}

func TestHUDAndCursor(t *testing.T) {
	ss := newSession(t)
	cmds := ss.frame(core.P(3, 1))
	if count(cmds, zCursor, headless.KindTexture) != 1 {
		t.Error("cursor not drawn")
	}
	var hud string
	for _, c := range cmds {
		if c.Z == zHUD && c.Kind == headless.KindText {
			hud = c.Text
		}
	}
	if hud != "red turn: click a unit, e to end turn" {
		t.Errorf("HUD = %q", hud)
	}

	cmds = ss.frame(core.P(40, 40))
	if count(cmds, zCursor, headless.KindTexture) != 0 {
		t.Error("cursor drawn off the map")
	}
}

func TestEntryPoints(t *testing.T) {
	persistent := MakePersistent()
	s := abi.As[PersistentState](&persistent)
	if s == nil || s.Actors.Len() == 0 {
		t.Fatal("MakePersistent returned no state")
	}

	var fleeting abi.OpaqueBlock
	ctx := headless.New(1.0 / 60)
	Update(ctx, &persistent, &fleeting)
	ctx.EndFrame()
	if fleeting.IsZero() {
		t.Fatal("Update did not create the fleeting block")
	}
	if _, _, ok := ctx.TextureDimensions(TextureName); !ok {
		t.Error("Update did not load the tile texture")
	}

	f := abi.As[FleetingState](&fleeting)
	steps := 0
	step := func(*PersistentState) sched.Result { steps++; return sched.Sleep(1000) }
	f.Queue.Queue(sched.Sequence(step, step, step))
	Drain(&persistent, &fleeting)
	if steps != 3 || f.Queue.Len() != 0 {
		t.Errorf("Drain ran %d steps and left %d tasks", steps, f.Queue.Len())
	}

	var empty abi.OpaqueBlock
	Drain(&persistent, &empty)
}

func TestSelectionSurvivesNewFleetingState(t *testing.T) {
	ss := newSession(t)
	red := mustActorAt(t, ss.s, core.P(0, 0))
	ss.frame(core.P(0, 0), core.MouseLeft)

	// A reload keeps the persistent state and starts over with an empty
	// fleeting state; the selection is plain data and still drives input.
	ss.f = NewFleetingState()
	ss.frame(core.P(2, 0), core.MouseLeft)
	if !ss.s.Selection.Is(Moving, red) {
		t.Fatalf("Selection = %v, want moving", ss.s.Selection)
	}

	// A move stranded without its task still hands over to Confirm.
	ss.f = NewFleetingState()
	ss.frame(core.P(2, 0))
	if !ss.s.Selection.Is(Confirm, red) {
		t.Errorf("Selection = %v, want confirm", ss.s.Selection)
	}
}

func TestUnknownSelectionStateReleasesInput(t *testing.T) {
	ss := newSession(t)
	ss.s.Selection = Selection{State: SelectionState(42), Key: mustActorAt(t, ss.s, core.P(0, 0))}

	ss.frame(core.P(0, 0), core.MouseLeft)
	if ss.s.Selection.State != Selected {
		t.Fatalf("Selection = %v, want selected", ss.s.Selection)
	}

	ss.s.Selection = Selection{State: SelectionState(42)}
	ss.frame(core.P(0, 0), core.ButtonEndTurn)
	if ss.s.Turn != Red || ss.s.Selection.State != SelectNone {
		t.Errorf("turn %s selection %v after end turn in an unknown state", ss.s.Turn, ss.s.Selection)
	}
}

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(32, 12, 60)
	if err := b.LoadTexture("tiles", ""); err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	return b
}

func TestTextureRegionCoversTwoColumns(t *testing.T) {
	b := newTestBackend(t)

	// Ground at tile (0,0), red infantry on tile (1,0).
	b.DrawTextureRegion("tiles", core.NewRect(0, 0, 16, 16), 0, 0, 0)
	b.DrawTextureRegion("tiles", core.NewRect(0, 32, 16, 16), 16, 0, 1)
	b.Present()

	s := b.Screen()
	ground := s.GetCell(0, 0).BG
	if ground.A == 0 || s.GetCell(1, 0).BG != ground {
		t.Errorf("ground background not set on both columns: %+v %+v", s.GetCell(0, 0), s.GetCell(1, 0))
	}
	if got := s.Row(0)[:4]; got != "  ii" {
		t.Errorf("row 0 = %q, want %q", got, "  ii")
	}
}

func TestDrawOrderFollowsZ(t *testing.T) {
	b := newTestBackend(t)

	// Cursor first with a higher z, unit second: the cursor must win.
	b.DrawTextureRegion("tiles", core.NewRect(64, 32, 16, 16), 0, 0, 5)
	b.DrawTextureRegion("tiles", core.NewRect(0, 32, 16, 16), 0, 0, 3)
	b.Present()

	if got := b.Screen().Row(0)[:2]; got != "[]" {
		t.Errorf("row 0 = %q, want the cursor on top", got)
	}
}

func TestGlyphSpacesAreTransparent(t *testing.T) {
	b := newTestBackend(t)

	b.DrawText("xy", 16, 0, 0, 0)
	// "^ " only writes its first column.
	b.DrawTextureRegion("tiles", core.NewRect(32, 48, 16, 16), 0, 0, 1)
	b.Present()

	if got := b.Screen().Row(0)[:2]; got != "^y" {
		t.Errorf("row 0 = %q, want %q", got, "^y")
	}
}

func TestMissingTextureDrawsError(t *testing.T) {
	b := NewBackend(32, 4, 60)
	b.DrawTextureRegion("nope", core.NewRect(0, 0, 16, 16), 0, 16, 0)
	b.Present()

	if row := b.Screen().Row(1); !strings.HasPrefix(row, "ERROR('nope')") {
		t.Errorf("row 1 = %q, want an error marker", row)
	}
	if _, _, ok := b.TextureDimensions("nope"); ok {
		t.Error("TextureDimensions reported a missing texture")
	}
}

func TestDrawRectBlends(t *testing.T) {
	b := NewBackend(8, 2, 60)
	b.DrawRect(core.NewRect(0, 0, 16, 16), core.White, 0)
	b.DrawRect(core.NewRect(0, 0, 8, 16), core.Black.WithAlpha(0.5), 1)
	b.Present()

	s := b.Screen()
	if got := s.GetCell(0, 0).BG; got.R != 0.5 || got.A != 1 {
		t.Errorf("blended cell = %+v, want half grey", got)
	}
	if got := s.GetCell(1, 0).BG; got != core.White {
		t.Errorf("untouched cell = %+v, want white", got)
	}
	if got := s.GetCell(2, 0).BG; got.A != 0 {
		t.Errorf("cell outside the rect = %+v", got)
	}
}

func TestPointerMovesByTiles(t *testing.T) {
	b := NewBackend(8, 3, 60) // four tiles by three

	b.MovePointer(1, 1)
	if got := core.WorldToGame(b.PointerWorld()); got != core.P(1, 1) {
		t.Errorf("pointer tile = %v, want (1,1)", got)
	}
	b.MovePointer(10, 10)
	if got := core.WorldToGame(b.PointerWorld()); got != core.P(3, 2) {
		t.Errorf("pointer tile = %v, want clamped (3,2)", got)
	}

	b.PointAtCell(5, 0)
	if got := core.WorldToGame(b.PointerScreen()); got != core.P(2, 0) {
		t.Errorf("cell (5,0) is tile %v, want (2,0)", got)
	}
}

func TestPressesLastOneFrame(t *testing.T) {
	b := NewBackend(8, 2, 60)
	b.Press(core.ButtonConfirm)
	if !b.IsPressed(core.ButtonConfirm) {
		t.Fatal("press not visible")
	}
	b.Present()
	if b.IsPressed(core.ButtonConfirm) {
		t.Error("press survived Present")
	}
}

func TestAdvanceMeasuresDelta(t *testing.T) {
	b := NewBackend(8, 2, 60)
	start := time.Unix(100, 0)
	b.Advance(start)
	if b.Delta() != 1.0/60 || b.Time() != 0 {
		t.Errorf("first frame delta %v time %v", b.Delta(), b.Time())
	}
	b.Advance(start.Add(100 * time.Millisecond))
	if b.Delta() != 0.1 || b.Time() != 0.1 {
		t.Errorf("delta %v time %v, want 0.1 0.1", b.Delta(), b.Time())
	}
	if b.FPS() >= 60 {
		t.Errorf("FPS = %d, want it to drop after a slow frame", b.FPS())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.Red)
	s.DrawText(2, 0, "cd", core.Blue)
	s.SetBG(0, 1, core.Green)

	out := RenderScreen(s, nil)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen lacks %q: %q", want, out)
		}
	}
}

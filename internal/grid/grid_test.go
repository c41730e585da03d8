package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

func TestNewFillsCells(t *testing.T) {
	g := New(3, 2, 7)

	if len(g.Cells) != 6 {
		t.Fatalf("Expected 6 cells, got %d", len(g.Cells))
	}
	for i, v := range g.Cells {
		if v != 7 {
			t.Errorf("Cells[%d] = %d, expected 7", i, v)
		}
	}
}

func TestRowMajorIndex(t *testing.T) {
	g := New(4, 3, 0)
	g.Set(1, 2, 42)

	if g.Cells[2*4+1] != 42 {
		t.Errorf("Set(1,2) should write Cells[9], got %v", g.Cells)
	}
	if g.At(1, 2) != 42 {
		t.Errorf("At(1,2) = %d, expected 42", g.At(1, 2))
	}
}

func TestClampedAccess(t *testing.T) {
	g := FromFunc(3, 3, func(p core.Pos) int { return p.Y*10 + p.X })

	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"inside", 1, 1, 11},
		{"left of grid", -5, 1, 10},
		{"right of grid", 9, 1, 12},
		{"above grid", 2, -1, 2},
		{"below grid", 0, 7, 20},
		{"far corner", 100, 100, 22},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Clamped(tc.x, tc.y); got != tc.expected {
				t.Errorf("Clamped(%d,%d) = %d, expected %d", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	g.SetClamped(-1, -1, 99)
	if g.At(0, 0) != 99 {
		t.Errorf("SetClamped(-1,-1) should write (0,0), got %d", g.At(0, 0))
	}
}

func TestCheckedGet(t *testing.T) {
	g := New(2, 2, 1)

	if _, ok := g.Get(2, 0); ok {
		t.Error("Get(2,0) should report out of bounds")
	}
	if v, ok := g.Get(1, 1); !ok || v != 1 {
		t.Errorf("Get(1,1) = (%d, %v), expected (1, true)", v, ok)
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At out of range should panic")
		}
	}()
	g := New(2, 2, 0)
	g.At(-1, 0)
}

func TestCloneIsDeep(t *testing.T) {
	g := New(2, 2, 0)
	c := g.Clone()
	c.Set(0, 0, 5)

	if g.At(0, 0) != 0 {
		t.Error("Clone should not share cells with the original")
	}
}

func TestMap(t *testing.T) {
	g := FromFunc(2, 2, func(p core.Pos) int { return p.X - p.Y })
	b := Map(&g, func(_ core.Pos, v int) bool { return v > 0 })

	expected := []bool{false, true, false, false}
	if diff := cmp.Diff(expected, b.Cells); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
	if !SameSize(&g, &b) {
		t.Error("Map should keep dimensions")
	}
}

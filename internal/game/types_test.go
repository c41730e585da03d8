package game

import (
	"testing"

	"github.com/vovakirdan/comfy-wars/internal/config"
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/pathing"
)

func TestCodes(t *testing.T) {
	groundTests := []struct {
		code int
		want GroundType
		ok   bool
	}{
		{1, Ground, true},
		{2, Water, true},
		{0, 0, false},
		{3, 0, false},
	}
	for _, tt := range groundTests {
		got, err := GroundFromCode(tt.code)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("GroundFromCode(%d) = %v, %v", tt.code, got, err)
		}
	}

	terrainTests := []struct {
		code int
		want TerrainType
		ok   bool
	}{
		{0, TerrainNone, true},
		{1, Street, true},
		{4, Street, true},
		{5, Forest, true},
		{6, 0, false},
	}
	for _, tt := range terrainTests {
		got, err := TerrainFromCode(tt.code)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("TerrainFromCode(%d) = %v, %v", tt.code, got, err)
		}
	}
}

func TestMoveCost(t *testing.T) {
	costs := config.DefaultGameConfig().Costs
	tests := []struct {
		ground  GroundType
		terrain TerrainType
		want    int
	}{
		{Ground, TerrainNone, 2},
		{Ground, Street, 1},
		{Ground, Forest, 3},
		{Water, TerrainNone, pathing.Impassable},
		{Water, Street, pathing.Impassable},
		{Water, Forest, pathing.Impassable},
	}
	for _, tt := range tests {
		if got := MoveCost(costs, tt.ground, tt.terrain); got != tt.want {
			t.Errorf("MoveCost(%s, %s) = %d, want %d", tt.ground, tt.terrain, got, tt.want)
		}
	}
}

func TestStateFromAssets(t *testing.T) {
	s := newState(t, []string{"112", "111"}, []string{"051", "000"},
		entity("red", "infantry", 0, 0),
		entity("blue", "tank", 2, 1),
	)
	if s.Ground.At(2, 0) != Water || s.Terrain.At(1, 0) != Forest || s.Terrain.At(2, 0) != Street {
		t.Error("layers not converted")
	}
	if s.Actors.Len() != 2 {
		t.Fatalf("actors = %d, want 2", s.Actors.Len())
	}
	_, a, _ := s.ActorAt(core.P(2, 1))
	if a.Sprite != "blue_tank" || a.HP != MaxHP || a.DrawPos != core.P(2, 1).World() {
		t.Errorf("actor = %+v", a)
	}
	if s.Selection.State != SelectNone || s.Turn != Red {
		t.Errorf("initial selection %v turn %s", s.Selection, s.Turn)
	}
}

func TestNewPersistentStateDefaults(t *testing.T) {
	s, err := NewPersistentState(config.DefaultGameConfig())
	if err != nil {
		t.Fatalf("NewPersistentState: %v", err)
	}
	if s.Ground.W != 16 || s.Ground.H != 10 || s.Actors.Len() != 6 {
		t.Errorf("got %dx%d with %d actors", s.Ground.W, s.Ground.H, s.Actors.Len())
	}
}

func TestEndTurn(t *testing.T) {
	s := newState(t, []string{"111"}, nil, entity("red", "infantry", 0, 0), entity("blue", "infantry", 2, 0))
	for _, a := range s.Actors.All() {
		a.HasMoved = true
	}
	s.Selection = SelectionOf(Selected, mustActorAt(t, s, core.P(0, 0)))

	s.EndTurn()

	if s.Turn != Blue {
		t.Errorf("Turn = %s, want blue", s.Turn)
	}
	for _, a := range s.Actors.All() {
		if a.HasMoved {
			t.Errorf("%s still marked as moved", a.Sprite)
		}
	}
	if s.Selection.State != SelectNone {
		t.Errorf("Selection = %v, want SelectNone", s.Selection)
	}
}

package game

import (
	"github.com/vovakirdan/comfy-wars/internal/config"
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/pathing"
)

// MoveCost returns the cost of entering a cell. Water is impassable
// whatever stands on it.
func MoveCost(costs config.CostConfig, g GroundType, t TerrainType) int {
	if g == Water {
		return costs.Water
	}
	switch t {
	case Street:
		return costs.Street
	case Forest:
		return costs.Forest
	default:
		return costs.Plain
	}
}

// CellCost is MoveCost for a map cell.
func (s *PersistentState) CellCost(p core.Pos) int {
	return MoveCost(s.Config.Costs, s.Ground.AtPos(p), s.Terrain.AtPos(p))
}

// rangeCost is CellCost with cells held by the other team made impassable.
func (s *PersistentState) rangeCost(team Team) pathing.CostFunc {
	enemy := s.occupancy(func(a *Actor) bool { return a.Team != team })
	return func(p core.Pos) int {
		if enemy[p] {
			return pathing.Impassable
		}
		return s.CellCost(p)
	}
}

// occupancy returns the cells of the actors matching pred.
func (s *PersistentState) occupancy(pred func(*Actor) bool) map[core.Pos]bool {
	cells := make(map[core.Pos]bool)
	for _, a := range s.Actors.All() {
		if pred(a) {
			cells[a.Pos] = true
		}
	}
	return cells
}

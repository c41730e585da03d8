package game

import (
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/grid"
	"github.com/vovakirdan/comfy-wars/internal/pathing"
)

// MovePlan is the result of aiming a unit at a target cell.
type MovePlan struct {
	Range grid.Grid[int] // Reachable envelope; > 0 means reachable
	Field grid.Grid[int] // Potential the path climbs
	Path  []core.Pos     // Starts at the unit; empty when there is no move
}

// Reachable reports whether p lies inside the movement envelope.
func (m *MovePlan) Reachable(p core.Pos) bool {
	v, ok := m.Range.Get(p.X, p.Y)
	return ok && v > 0
}

// Dest returns the last cell of the path.
func (m *MovePlan) Dest() (core.Pos, bool) {
	if len(m.Path) < 2 {
		return core.Pos{}, false
	}
	return m.Path[len(m.Path)-1], true
}

// PlanMove computes the move of the actor k toward target.
//
// The range grid is relaxed from the actor with enemy cells impassable. A
// second field is relaxed from the target and cut to the range envelope.
// Every occupied cell is then forced to the blocked value and relaxed again
// together with the best reachable cell, so paths may pass next to or
// through allies but never end on them. Enemy cells are blocked last, and
// the path climbs the field from the actor.
func PlanMove(s *PersistentState, k ActorKey, target core.Pos) (MovePlan, bool) {
	actor, ok := s.Actors.Value(k)
	if !ok {
		return MovePlan{}, false
	}
	w, h := s.Ground.W, s.Ground.H
	mv := s.Config.Move

	plan := MovePlan{Range: grid.New(w, h, 0)}
	seeds := pathing.Seed(&plan.Range, mv.Range, actor.Pos)
	pathing.Relax(&plan.Range, seeds, s.rangeCost(actor.Team))

	plan.Field = grid.New(w, h, 0)
	if !s.InBounds(target) || target == actor.Pos {
		plan.Path = []core.Pos{actor.Pos}
		return plan, true
	}
	// Twice the range keeps the actor's own cell positive for every target
	// in the envelope, whichever way the costs are asymmetric.
	seeds = pathing.Seed(&plan.Field, 2*mv.Range, target)
	pathing.Relax(&plan.Field, seeds, s.CellCost)
	for i, r := range plan.Range.Cells {
		if r <= 0 {
			plan.Field.Cells[i] = 0
		}
	}

	occupied := s.occupancy(func(*Actor) bool { return true })
	best, bestVal := core.Pos{}, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := core.P(x, y)
			if v := plan.Field.At(x, y); v > bestVal && !occupied[p] {
				best, bestVal = p, v
			}
		}
	}
	if bestVal <= 0 {
		plan.Path = []core.Pos{actor.Pos}
		return plan, true
	}

	seeds = seeds[:0]
	for p := range occupied {
		plan.Field.SetPos(p, mv.Blocked)
		seeds = append(seeds, p)
	}
	seeds = append(seeds, best)
	pathing.Relax(&plan.Field, seeds, func(p core.Pos) int {
		if !plan.Reachable(p) {
			return pathing.Impassable
		}
		return s.CellCost(p)
	})

	for p := range s.occupancy(func(a *Actor) bool { return a.Team != actor.Team }) {
		plan.Field.SetPos(p, mv.Blocked)
	}

	plan.Path = pathing.Path(&plan.Field, actor.Pos)
	if len(plan.Path) == 0 {
		plan.Path = []core.Pos{actor.Pos}
	}
	return plan, true
}

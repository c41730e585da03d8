// Package pathing implements potential relaxation over integer grids and
// extraction of monotonic paths from the relaxed field.
//
// Relaxation propagates values outward from seed cells: a cell is raised to
// (best neighbour - cost(cell)) whenever that is larger than its current
// value. Unlike Dijkstra there is no sorted frontier; cells may be raised
// several times, which handles multiple seeds and asymmetric costs.
package pathing

import (
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/grid"
)

// Impassable is the cost of cells that can never be entered.
const Impassable = 9999

// CostFunc returns the cost of entering a cell.
type CostFunc func(p core.Pos) int

// neighborOffsets is the fixed enumeration order: left, right, down, up.
var neighborOffsets = [4]core.Pos{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// Neighbors returns the in-bounds 4-neighbours of p on a w×h grid in the
// order left, right, down, up.
func Neighbors(p core.Pos, w, h int) []core.Pos {
	out := make([]core.Pos, 0, 4)
	for _, d := range neighborOffsets {
		n := p.Add(d)
		if n.X >= 0 && n.X < w && n.Y >= 0 && n.Y < h {
			out = append(out, n)
		}
	}
	return out
}

// Relax raises cells of g until no cell can be improved. The seeds are the
// cells whose values were set by the caller; they are re-examined as well.
// Values only grow and are bounded by the largest seed, so it terminates.
func Relax(g *grid.Grid[int], seeds []core.Pos, cost CostFunc) {
	next := make([]core.Pos, 0, len(seeds)*5)
	for _, s := range seeds {
		next = append(next, Neighbors(s, g.W, g.H)...)
	}
	next = append(next, seeds...)

	var buffer []core.Pos
	for len(next) > 0 {
		buffer, next = next, buffer[:0]
		for _, p := range buffer {
			if !g.Contains(p) {
				continue
			}
			neighbors := Neighbors(p, g.W, g.H)
			if len(neighbors) == 0 {
				continue
			}
			best := g.AtPos(neighbors[0])
			for _, n := range neighbors[1:] {
				best = max(best, g.AtPos(n))
			}

			v := g.AtPos(p)
			c := cost(p)
			if best <= v+c {
				continue
			}
			nv := best - c
			g.SetPos(p, nv)
			for _, n := range neighbors {
				if g.AtPos(n) < nv-cost(n) {
					next = append(next, n)
				}
			}
		}
	}
}

// Path follows strictly increasing values from start until it reaches a
// local maximum and returns every visited cell, start included.
//
// Among equal-valued best neighbours the first in Neighbors order (left,
// right, down, up) wins, so ties favour horizontal steps. A last-wins
// choice over the same order would favour up, then down, right and left;
// both give paths of equal cost, they only differ in shape. An
// out-of-bounds start or a start value <= 0 yields an empty path.
func Path(g *grid.Grid[int], start core.Pos) []core.Pos {
	if !g.Contains(start) {
		return nil
	}
	v := g.AtPos(start)
	if v <= 0 {
		return nil
	}

	path := []core.Pos{start}
	pos := start
	for {
		bestPos, bestVal, found := pos, v, false
		for _, n := range Neighbors(pos, g.W, g.H) {
			if nv := g.AtPos(n); nv > bestVal {
				bestPos, bestVal, found = n, nv, true
			}
		}
		if !found {
			return path
		}
		path = append(path, bestPos)
		pos, v = bestPos, bestVal
	}
}

// Seed sets value at every position in seeds that lies on the grid and
// returns the in-bounds seeds.
func Seed(g *grid.Grid[int], value int, seeds ...core.Pos) []core.Pos {
	out := seeds[:0:0]
	for _, s := range seeds {
		if g.Contains(s) {
			g.SetPos(s, value)
			out = append(out, s)
		}
	}
	return out
}

// Uniform returns a CostFunc with the same cost for every cell.
func Uniform(c int) CostFunc {
	return func(core.Pos) int { return c }
}

// Package grid provides a generic row-major 2-D value grid used for map
// layers and relaxation scratch space.
package grid

import (
	"fmt"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// Grid is a rectangular grid of values.
// Cells are stored in row-major order: index = y*W + x.
type Grid[T any] struct {
	W     int // Width of the grid
	H     int // Height of the grid
	Cells []T // Flat array of cells, length W*H
}

// New creates a grid with every cell set to fill.
func New[T any](w, h int, fill T) Grid[T] {
	cells := make([]T, w*h)
	for i := range cells {
		cells[i] = fill
	}
	return Grid[T]{W: w, H: h, Cells: cells}
}

// FromFunc creates a grid whose cells are produced by f.
func FromFunc[T any](w, h int, f func(p core.Pos) T) Grid[T] {
	g := Grid[T]{W: w, H: h, Cells: make([]T, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Cells[y*w+x] = f(core.P(x, y))
		}
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid[T]) index(x, y int) int {
	return y*g.W + x
}

// InBounds returns true if (x, y) is within the grid boundaries.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Contains returns true if p is within the grid boundaries.
func (g *Grid[T]) Contains(p core.Pos) bool {
	return g.InBounds(p.X, p.Y)
}

// At returns the value at (x, y). The coordinate must be in bounds;
// violating that is a programming error and panics.
func (g *Grid[T]) At(x, y int) T {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: (%d,%d) out of range %dx%d", x, y, g.W, g.H))
	}
	return g.Cells[g.index(x, y)]
}

// AtPos is At for a Pos.
func (g *Grid[T]) AtPos(p core.Pos) T {
	return g.At(p.X, p.Y)
}

// Ptr returns a pointer to the cell at (x, y). Same precondition as At.
func (g *Grid[T]) Ptr(x, y int) *T {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: (%d,%d) out of range %dx%d", x, y, g.W, g.H))
	}
	return &g.Cells[g.index(x, y)]
}

// Set stores v at (x, y). Same precondition as At.
func (g *Grid[T]) Set(x, y int, v T) {
	*g.Ptr(x, y) = v
}

// SetPos is Set for a Pos.
func (g *Grid[T]) SetPos(p core.Pos, v T) {
	g.Set(p.X, p.Y, v)
}

// Get returns the value at (x, y) and whether the coordinate was in bounds.
func (g *Grid[T]) Get(x, y int) (T, bool) {
	if !g.InBounds(x, y) {
		var zero T
		return zero, false
	}
	return g.Cells[g.index(x, y)], true
}

// clamp moves (x, y) to the nearest valid cell.
func (g *Grid[T]) clamp(x, y int) (int, int) {
	return core.Clamp(x, 0, g.W-1), core.Clamp(y, 0, g.H-1)
}

// Clamped returns the value of the cell nearest to (x, y).
// The grid must not be empty.
func (g *Grid[T]) Clamped(x, y int) T {
	x, y = g.clamp(x, y)
	return g.Cells[g.index(x, y)]
}

// ClampedPtr returns a pointer to the cell nearest to (x, y).
func (g *Grid[T]) ClampedPtr(x, y int) *T {
	x, y = g.clamp(x, y)
	return &g.Cells[g.index(x, y)]
}

// SetClamped stores v in the cell nearest to (x, y).
func (g *Grid[T]) SetClamped(x, y int, v T) {
	*g.ClampedPtr(x, y) = v
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() Grid[T] {
	cells := make([]T, len(g.Cells))
	copy(cells, g.Cells)
	return Grid[T]{W: g.W, H: g.H, Cells: cells}
}

// SameSize reports whether two grids have equal dimensions.
func SameSize[A, B any](a *Grid[A], b *Grid[B]) bool {
	return a.W == b.W && a.H == b.H
}

// Map produces a new grid by applying f to every cell of g.
func Map[T, U any](g *Grid[T], f func(p core.Pos, v T) U) Grid[U] {
	return FromFunc(g.W, g.H, func(p core.Pos) U {
		return f(p, g.Cells[g.index(p.X, p.Y)])
	})
}

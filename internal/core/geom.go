// Package core provides the fundamental types shared by the host, the
// loadable unit and the platform backends. It contains no external
// dependencies so that gameplay logic stays pure and testable.
package core

import (
	"fmt"
	"math"
)

// TileSize is the edge length of one map tile in world pixels.
const TileSize = 16

// Pos is a cell coordinate on the game grid.
// X increases to the right, Y increases downward.
type Pos struct {
	X, Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the component-wise sum of two positions.
func (p Pos) Add(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference p - o.
func (p Pos) Sub(o Pos) Pos {
	return Pos{X: p.X - o.X, Y: p.Y - o.Y}
}

// Manhattan returns the Manhattan distance to another position.
func (p Pos) Manhattan(o Pos) int {
	return Abs(p.X-o.X) + Abs(p.Y-o.Y)
}

// World returns the top-left world pixel of the tile at p.
func (p Pos) World() FPos {
	return FPos{X: float64(p.X * TileSize), Y: float64(p.Y * TileSize)}
}

// FPos is a continuous position in world pixels.
type FPos struct {
	X, Y float64
}

// Lerp interpolates between a and b by t in [0, 1].
func Lerp(a, b FPos, t float64) FPos {
	t = ClampF(t, 0, 1)
	return FPos{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// WorldToGame translates world pixels into the grid cell containing them.
func WorldToGame(p FPos) Pos {
	return Pos{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

// GridWorldPos rounds a world position down to the tile grid.
func GridWorldPos(p FPos) FPos {
	return FPos{
		X: math.Floor(p.X/TileSize) * TileSize,
		Y: math.Floor(p.Y/TileSize) * TileSize,
	}
}

// Rect is an axis-aligned rectangle in world pixels.
// X and Y are the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// TileRect returns the rectangle covered by the tile at p.
func TileRect(p Pos) Rect {
	w := p.World()
	return Rect{X: w.X, Y: w.Y, W: TileSize, H: TileSize}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Contains returns true if the point is inside this rectangle.
func (r Rect) Contains(p FPos) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// TakeLeft returns the leftmost strip of at most amount width.
func (r Rect) TakeLeft(amount float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: math.Min(r.W, amount), H: r.H}
}

// TakeTop returns the topmost strip of at most amount height.
func (r Rect) TakeTop(amount float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: math.Min(r.H, amount)}
}

// TakeRight returns the rightmost strip of at most amount width.
func (r Rect) TakeRight(amount float64) Rect {
	return Rect{X: math.Max(r.X, r.Right()-amount), Y: r.Y, W: math.Min(r.W, amount), H: r.H}
}

// TakeBot returns the bottom strip of at most amount height.
func (r Rect) TakeBot(amount float64) Rect {
	return Rect{X: r.X, Y: math.Max(r.Y, r.Bottom()-amount), W: r.W, H: math.Min(r.H, amount)}
}

// SkipLeft returns the rect without amount of space on the left side.
func (r Rect) SkipLeft(amount float64) Rect {
	return Rect{X: r.X + amount, Y: r.Y, W: r.W - amount, H: r.H}
}

// SkipTop returns the rect without amount of space on the top side.
func (r Rect) SkipTop(amount float64) Rect {
	return Rect{X: r.X, Y: r.Y + amount, W: r.W, H: r.H - amount}
}

// SkipRight returns the rect without amount of space on the right side.
func (r Rect) SkipRight(amount float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W - amount, H: r.H}
}

// SkipBot returns the rect without amount of space on the bottom side.
func (r Rect) SkipBot(amount float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H - amount}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

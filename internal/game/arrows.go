package game

import (
	"fmt"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// side is one edge of a tile an arrow piece connects to.
type side byte

const (
	north side = 'n'
	south side = 's'
	east  side = 'e'
	west  side = 'w'
)

// toward returns the side a unit step leaves through.
func toward(step core.Pos) (side, bool) {
	switch step {
	case core.P(1, 0):
		return east, true
	case core.P(-1, 0):
		return west, true
	case core.P(0, 1):
		return south, true
	case core.P(0, -1):
		return north, true
	}
	return 0, false
}

// opposite returns the side a step enters through.
func opposite(s side) side {
	switch s {
	case north:
		return south
	case south:
		return north
	case east:
		return west
	default:
		return east
	}
}

// sideOrder is the order sides appear in sprite names.
var sideOrder = map[side]int{north: 0, south: 1, east: 2, west: 3}

// ArrowSprite returns the sprite for a path tile entered by step in and
// left by step out. Two steps right give "arrow_ew"; down then right gives
// "arrow_ne". Steps that are not unit steps, or that reverse, panic.
func ArrowSprite(in, out core.Pos) string {
	from, ok1 := toward(in)
	to, ok2 := toward(out)
	if !ok1 || !ok2 {
		panic(fmt.Sprintf("game: no arrow for steps %s then %s", in, out))
	}
	a, b := opposite(from), to
	if a == b {
		panic(fmt.Sprintf("game: no arrow for steps %s then %s", in, out))
	}
	if sideOrder[a] > sideOrder[b] {
		a, b = b, a
	}
	return "arrow_" + string([]byte{byte(a), byte(b)})
}

// HeadSprite returns the arrow head for the last tile, entered by step in.
func HeadSprite(in core.Pos) string {
	to, ok := toward(in)
	if !ok {
		panic(fmt.Sprintf("game: no arrow head for step %s", in))
	}
	return "arrow_" + string(to)
}

// PathSprite is an arrow piece drawn on one path tile.
type PathSprite struct {
	Pos    core.Pos
	Sprite string
}

// PathSprites returns the arrow pieces of a path. The first cell is the
// unit itself and gets none.
func PathSprites(path []core.Pos) []PathSprite {
	if len(path) < 2 {
		return nil
	}
	out := make([]PathSprite, 0, len(path)-1)
	for i := 1; i < len(path)-1; i++ {
		in := path[i].Sub(path[i-1])
		next := path[i+1].Sub(path[i])
		out = append(out, PathSprite{Pos: path[i], Sprite: ArrowSprite(in, next)})
	}
	last := len(path) - 1
	out = append(out, PathSprite{Pos: path[last], Sprite: HeadSprite(path[last].Sub(path[last-1]))})
	return out
}

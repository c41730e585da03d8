package game

import (
	"fmt"

	"github.com/vovakirdan/comfy-wars/internal/arena"
	"github.com/vovakirdan/comfy-wars/internal/core"
)

// GroundType is the base layer of a map cell.
type GroundType int

const (
	Ground GroundType = iota + 1
	Water
)

// String returns the ground name.
func (g GroundType) String() string {
	switch g {
	case Ground:
		return "ground"
	case Water:
		return "water"
	default:
		return fmt.Sprintf("GroundType(%d)", int(g))
	}
}

// GroundFromCode converts a map code into a GroundType.
func GroundFromCode(code int) (GroundType, error) {
	switch code {
	case 1:
		return Ground, nil
	case 2:
		return Water, nil
	default:
		return 0, fmt.Errorf("unsupported ground type %d", code)
	}
}

// TerrainType is what stands on top of the ground.
type TerrainType int

const (
	TerrainNone TerrainType = iota
	Street
	Forest
)

// String returns the terrain name.
func (t TerrainType) String() string {
	switch t {
	case TerrainNone:
		return "none"
	case Street:
		return "street"
	case Forest:
		return "forest"
	default:
		return fmt.Sprintf("TerrainType(%d)", int(t))
	}
}

// TerrainFromCode converts a map code into a TerrainType. Codes 1 to 4 are
// street pieces that only differ in their tile.
func TerrainFromCode(code int) (TerrainType, error) {
	switch code {
	case 0:
		return TerrainNone, nil
	case 1, 2, 3, 4:
		return Street, nil
	case 5:
		return Forest, nil
	default:
		return 0, fmt.Errorf("unsupported terrain type %d", code)
	}
}

// Team identifies a side.
type Team int

const (
	Red Team = iota
	Blue
)

// String returns the team name as used in sprite names.
func (t Team) String() string {
	if t == Blue {
		return "blue"
	}
	return "red"
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == Red {
		return Blue
	}
	return Red
}

// ParseTeam converts a team name.
func ParseTeam(s string) (Team, error) {
	switch s {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	default:
		return 0, fmt.Errorf("unknown team %q", s)
	}
}

// UnitKind is the type of an actor.
type UnitKind int

const (
	Infantry UnitKind = iota
	Tank
)

// String returns the kind name as used in sprite names.
func (k UnitKind) String() string {
	if k == Tank {
		return "tank"
	}
	return "infantry"
}

// ParseUnitKind converts a kind name.
func ParseUnitKind(s string) (UnitKind, error) {
	switch s {
	case "infantry":
		return Infantry, nil
	case "tank":
		return Tank, nil
	default:
		return 0, fmt.Errorf("unknown unit kind %q", s)
	}
}

// MaxHP is the hit points every unit starts with.
const MaxHP = 10

// Actor is a unit on the map.
type Actor struct {
	Pos      core.Pos
	DrawPos  core.FPos // Interpolated during a move
	Sprite   string
	Team     Team
	Kind     UnitKind
	HP       int
	HasMoved bool
}

// NewActor places a fresh unit at p.
func NewActor(team Team, kind UnitKind, p core.Pos) Actor {
	return Actor{
		Pos:     p,
		DrawPos: p.World(),
		Sprite:  team.String() + "_" + kind.String(),
		Team:    team,
		Kind:    kind,
		HP:      MaxHP,
	}
}

// ActorKey is a handle to an actor in the state's arena.
type ActorKey = arena.Key[Actor]

// SelectionState is the step of the turn interaction.
type SelectionState int

const (
	SelectNone SelectionState = iota // No unit selected
	Selected                         // A unit is selected and its move is being aimed
	Moving                           // The unit's move task is running
	Confirm                          // The unit has arrived and waits for confirmation
)

// String returns the state name.
func (st SelectionState) String() string {
	switch st {
	case SelectNone:
		return "none"
	case Selected:
		return "selected"
	case Moving:
		return "moving"
	case Confirm:
		return "confirm"
	default:
		return fmt.Sprintf("SelectionState(%d)", int(st))
	}
}

// Selection is the turn interaction state. It lives in PersistentState, so
// it holds plain data only: type descriptors of one build mean nothing to
// the next. Key is the zero key when State is SelectNone.
type Selection struct {
	State SelectionState
	Key   ActorKey
}

// SelectionOf returns the selection of k in state st.
func SelectionOf(st SelectionState, k ActorKey) Selection {
	if st == SelectNone {
		return Selection{}
	}
	return Selection{State: st, Key: k}
}

// Is reports whether the selection is k in state st.
func (sel Selection) Is(st SelectionState, k ActorKey) bool {
	return sel.State == st && sel.Key == k
}

func (sel Selection) String() string {
	if sel.State == SelectNone {
		return sel.State.String()
	}
	return fmt.Sprintf("%s %v", sel.State, sel.Key)
}

// TextureName is the texture every sprite and tile is cut from.
const TextureName = "tiles"

// Sprite is a named region of the tile texture.
type Sprite struct {
	Src core.Rect
}

// Draw draws the sprite with its top-left corner at (x, y).
func (s Sprite) Draw(r core.Renderer, x, y float64, z int) {
	r.DrawTextureRegion(TextureName, s.Src, x, y, z)
}

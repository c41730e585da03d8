package game

import (
	"fmt"

	"github.com/vovakirdan/comfy-wars/internal/arena"
	"github.com/vovakirdan/comfy-wars/internal/assets"
	"github.com/vovakirdan/comfy-wars/internal/config"
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/grid"
	"github.com/vovakirdan/comfy-wars/internal/sched"
)

// Tile is a render tile of a map layer.
type Tile = assets.Tile

// PersistentState survives every reload. It is created once by
// MakePersistent and owned by the host from then on. Every build of the
// unit reads it, so it must not hold interface or func values: their type
// descriptors and code belong to the build that stored them.
type PersistentState struct {
	// Loaded from assets.
	Sprites      map[string]Sprite
	Ground       grid.Grid[GroundType]
	Terrain      grid.Grid[TerrainType]
	GroundTiles  []Tile
	TerrainTiles []Tile
	AtlasPath    string // Empty means the backend's embedded atlas

	Actors    *arena.Arena[Actor]
	Selection Selection
	Turn      Team

	Config config.GameConfig
}

// FleetingState is dropped and recreated on every reload, so its layout
// may change freely between builds.
type FleetingState struct {
	Queue *sched.Scheduler[PersistentState]

	textureTried bool
}

// NewFleetingState creates an empty fleeting state.
func NewFleetingState() *FleetingState {
	return &FleetingState{Queue: sched.New[PersistentState]()}
}

// NewPersistentState loads the assets named by cfg and builds the initial
// game state. Malformed assets are an error.
func NewPersistentState(cfg config.GameConfig) (*PersistentState, error) {
	m, err := assets.LoadMap(cfg.Assets.Map)
	if err != nil {
		return nil, err
	}
	table, err := assets.LoadSprites(cfg.Assets.Sprites)
	if err != nil {
		return nil, err
	}
	s, err := stateFromAssets(cfg, m, table)
	if err != nil {
		return nil, err
	}
	s.AtlasPath = cfg.Assets.Atlas
	return s, nil
}

func stateFromAssets(cfg config.GameConfig, m *assets.Map, table assets.SpriteTable) (*PersistentState, error) {
	s := &PersistentState{
		Sprites:      make(map[string]Sprite, len(table)),
		GroundTiles:  m.Ground.Tiles,
		TerrainTiles: m.Terrain.Tiles,
		Actors:       arena.New[Actor](len(m.Entities)),
		Turn:         Red,
		Config:       cfg,
	}
	for name, d := range table {
		s.Sprites[name] = Sprite{Src: d.Src()}
	}

	var err error
	if s.Ground, err = convertLayer(&m.Ground.Codes, GroundFromCode); err != nil {
		return nil, fmt.Errorf("game: ground layer: %w", err)
	}
	if s.Terrain, err = convertLayer(&m.Terrain.Codes, TerrainFromCode); err != nil {
		return nil, fmt.Errorf("game: terrain layer: %w", err)
	}

	for _, e := range m.Entities {
		team, err := ParseTeam(e.Team)
		if err != nil {
			return nil, fmt.Errorf("game: entity at %s: %w", e.Pos, err)
		}
		kind, err := ParseUnitKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("game: entity at %s: %w", e.Pos, err)
		}
		if _, _, taken := s.ActorAt(e.Pos); taken {
			return nil, fmt.Errorf("game: two entities at %s", e.Pos)
		}
		a := NewActor(team, kind, e.Pos)
		if _, ok := s.Sprites[a.Sprite]; !ok {
			return nil, fmt.Errorf("game: no sprite %q", a.Sprite)
		}
		s.Actors.Insert(a)
	}
	return s, nil
}

func convertLayer[T any](codes *grid.Grid[int], conv func(int) (T, error)) (grid.Grid[T], error) {
	var firstErr error
	g := grid.Map(codes, func(p core.Pos, code int) T {
		v, err := conv(code)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", p, err)
		}
		return v
	})
	return g, firstErr
}

// ActorAt returns the actor standing on p.
func (s *PersistentState) ActorAt(p core.Pos) (ActorKey, *Actor, bool) {
	return s.Actors.Find(func(a *Actor) bool { return a.Pos == p })
}

// InBounds reports whether p is on the map.
func (s *PersistentState) InBounds(p core.Pos) bool {
	return s.Ground.Contains(p)
}

// EndTurn hands the turn to the other team and readies all its units.
func (s *PersistentState) EndTurn() {
	s.Turn = s.Turn.Opponent()
	for _, a := range s.Actors.All() {
		a.HasMoved = false
	}
	s.Selection = Selection{}
}

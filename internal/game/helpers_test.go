package game

import (
	"testing"

	"github.com/vovakirdan/comfy-wars/internal/assets"
	"github.com/vovakirdan/comfy-wars/internal/config"
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/grid"
)

// codes turns digit rows into a code grid.
func codes(rows []string) grid.Grid[int] {
	return grid.FromFunc(len(rows[0]), len(rows), func(p core.Pos) int {
		return int(rows[p.Y][p.X] - '0')
	})
}

// newState builds a state from digit rows. An empty terrain means no
// terrain anywhere.
func newState(t *testing.T, ground, terrain []string, entities ...assets.Entity) *PersistentState {
	t.Helper()
	if terrain == nil {
		for _, row := range ground {
			b := make([]byte, len(row))
			for i := range b {
				b[i] = '0'
			}
			terrain = append(terrain, string(b))
		}
	}
	m := &assets.Map{
		W:        len(ground[0]),
		H:        len(ground),
		Ground:   assets.Layer{Codes: codes(ground)},
		Terrain:  assets.Layer{Codes: codes(terrain)},
		Entities: entities,
	}
	table, err := assets.LoadSprites("")
	if err != nil {
		t.Fatalf("LoadSprites: %v", err)
	}
	s, err := stateFromAssets(config.DefaultGameConfig(), m, table)
	if err != nil {
		t.Fatalf("stateFromAssets: %v", err)
	}
	return s
}

func entity(team, kind string, x, y int) assets.Entity {
	return assets.Entity{Team: team, Kind: kind, Pos: core.P(x, y)}
}

func mustActorAt(t *testing.T, s *PersistentState, p core.Pos) ActorKey {
	t.Helper()
	k, _, ok := s.ActorAt(p)
	if !ok {
		t.Fatalf("no actor at %s", p)
	}
	return k
}

package assets

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/grid"
)

// Tile is one auto-tile render entry: a source rectangle in the tile
// texture and the world pixel position it is drawn at.
type Tile struct {
	Src core.Rect
	Pos core.FPos
}

// Layer is one integer-coded map layer with its render tiles.
type Layer struct {
	Codes grid.Grid[int]
	Tiles []Tile
}

// Entity is an actor placement read from the map.
type Entity struct {
	Kind string
	Team string
	Pos  core.Pos
}

// Map is a parsed level.
type Map struct {
	ID       string
	Name     string
	W, H     int
	Ground   Layer
	Terrain  Layer
	Entities []Entity
}

type mapFile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Size struct {
		W int `yaml:"w"`
		H int `yaml:"h"`
	} `yaml:"size"`
	Layers struct {
		Ground  layerFile `yaml:"ground"`
		Terrain layerFile `yaml:"terrain"`
	} `yaml:"layers"`
	Entities []struct {
		Kind string `yaml:"kind"`
		Team string `yaml:"team"`
		X    int    `yaml:"x"`
		Y    int    `yaml:"y"`
	} `yaml:"entities"`
}

type layerFile struct {
	// Codes maps a cell code to the tile texture offset drawn for it.
	Codes map[int][]float64 `yaml:"codes"`
	Rows  []string          `yaml:"rows"`
	// Tiles are drawn in addition to the generated ones.
	Tiles []struct {
		Src []float64 `yaml:"src"`
		Px  []float64 `yaml:"px"`
	} `yaml:"tiles"`
}

// ParseMap decodes a map from YAML. Rows hold one decimal digit per cell.
func ParseMap(data []byte) (*Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, malformed("map: %v", err)
	}
	if f.Size.W <= 0 || f.Size.H <= 0 {
		return nil, malformed("map: size %dx%d", f.Size.W, f.Size.H)
	}

	m := &Map{ID: f.ID, Name: f.Name, W: f.Size.W, H: f.Size.H}
	var err error
	if m.Ground, err = parseLayer("ground", f.Layers.Ground, m.W, m.H); err != nil {
		return nil, err
	}
	if m.Terrain, err = parseLayer("terrain", f.Layers.Terrain, m.W, m.H); err != nil {
		return nil, err
	}

	for i, e := range f.Entities {
		p := core.P(e.X, e.Y)
		if !m.Ground.Codes.Contains(p) {
			return nil, malformed("map: entity %d at %s is outside the map", i, p)
		}
		if e.Kind == "" || e.Team == "" {
			return nil, malformed("map: entity %d needs kind and team", i)
		}
		m.Entities = append(m.Entities, Entity{Kind: e.Kind, Team: e.Team, Pos: p})
	}
	return m, nil
}

func parseLayer(name string, f layerFile, w, h int) (Layer, error) {
	if len(f.Rows) != h {
		return Layer{}, malformed("map: layer %s has %d rows, want %d", name, len(f.Rows), h)
	}
	codes := grid.New(w, h, 0)
	for y, row := range f.Rows {
		if len(row) != w {
			return Layer{}, malformed("map: layer %s row %d has %d cells, want %d", name, y, len(row), w)
		}
		for x := 0; x < w; x++ {
			c := row[x]
			if c < '0' || c > '9' {
				return Layer{}, malformed("map: layer %s row %d: %q is not a digit", name, y, c)
			}
			codes.Set(x, y, int(c-'0'))
		}
	}

	for code, off := range f.Codes {
		if len(off) != 2 {
			return Layer{}, malformed("map: layer %s code %d: want [x, y] offset", name, code)
		}
	}

	var tiles []Tile
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off, ok := f.Codes[codes.At(x, y)]
			if !ok {
				continue
			}
			tiles = append(tiles, Tile{
				Src: core.NewRect(off[0], off[1], core.TileSize, core.TileSize),
				Pos: core.P(x, y).World(),
			})
		}
	}
	for i, t := range f.Tiles {
		if len(t.Src) != 2 || len(t.Px) != 2 {
			return Layer{}, malformed("map: layer %s tile %d: want src and px pairs", name, i)
		}
		tiles = append(tiles, Tile{
			Src: core.NewRect(t.Src[0], t.Src[1], core.TileSize, core.TileSize),
			Pos: core.FPos{X: t.Px[0], Y: t.Px[1]},
		})
	}
	return Layer{Codes: codes, Tiles: slices.Clip(tiles)}, nil
}

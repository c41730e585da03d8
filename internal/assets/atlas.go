package assets

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// Glyph is how the terminal backend renders one atlas region.
type Glyph struct {
	Text string
	FG   core.Color
	BG   core.Color // BG.A == 0 keeps whatever is below
}

// Atlas is a glyph texture: source rectangle origins mapped to glyphs.
type Atlas struct {
	Name   string
	Width  float64
	Height float64
	Tile   float64
	glyphs map[[2]float64]Glyph
}

// Glyph returns the glyph whose region contains the source origin (x, y).
// Origins are snapped to the atlas tile grid.
func (a *Atlas) Glyph(x, y float64) (Glyph, bool) {
	if a.Tile > 0 {
		x = float64(int(x/a.Tile)) * a.Tile
		y = float64(int(y/a.Tile)) * a.Tile
	}
	g, ok := a.glyphs[[2]float64{x, y}]
	return g, ok
}

// Len returns the number of regions.
func (a *Atlas) Len() int {
	return len(a.glyphs)
}

type atlasFile struct {
	Name    string  `yaml:"name"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Tile    float64 `yaml:"tile"`
	Regions []struct {
		X     float64 `yaml:"x"`
		Y     float64 `yaml:"y"`
		Glyph string  `yaml:"glyph"`
		FG    string  `yaml:"fg"`
		BG    string  `yaml:"bg"`
	} `yaml:"regions"`
}

// ParseAtlas decodes a glyph atlas from YAML.
func ParseAtlas(data []byte) (*Atlas, error) {
	var f atlasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, malformed("atlas: %v", err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, malformed("atlas: size %gx%g", f.Width, f.Height)
	}
	if f.Tile <= 0 {
		f.Tile = core.TileSize
	}

	a := &Atlas{
		Name:   f.Name,
		Width:  f.Width,
		Height: f.Height,
		Tile:   f.Tile,
		glyphs: make(map[[2]float64]Glyph, len(f.Regions)),
	}
	for i, r := range f.Regions {
		if r.X < 0 || r.Y < 0 || r.X >= f.Width || r.Y >= f.Height {
			return nil, malformed("atlas: region %d at (%g,%g) is outside %gx%g", i, r.X, r.Y, f.Width, f.Height)
		}
		g := Glyph{Text: r.Glyph, FG: core.White}
		var err error
		if r.FG != "" {
			if g.FG, err = ParseHexColor(r.FG); err != nil {
				return nil, malformed("atlas: region %d fg: %v", i, err)
			}
		}
		if r.BG != "" {
			if g.BG, err = ParseHexColor(r.BG); err != nil {
				return nil, malformed("atlas: region %d bg: %v", i, err)
			}
		}
		a.glyphs[[2]float64{r.X, r.Y}] = g
	}
	return a, nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (core.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return core.Color{}, malformed("colour %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return core.Color{}, malformed("colour %q", s)
	}
	return core.RGBA(
		float64(v>>24&0xff)/255,
		float64(v>>16&0xff)/255,
		float64(v>>8&0xff)/255,
		float64(v&0xff)/255,
	), nil
}

package assets

import (
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// SpriteData is the tile texture offset of a named sprite.
type SpriteData struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Src returns the source rectangle of the sprite in the tile texture.
func (s SpriteData) Src() core.Rect {
	return core.NewRect(s.X, s.Y, core.TileSize, core.TileSize)
}

// SpriteTable maps sprite names to texture offsets.
type SpriteTable map[string]SpriteData

// ParseSprites decodes a sprite table. JSON is a subset of YAML, so both
// forms are accepted.
func ParseSprites(data []byte) (SpriteTable, error) {
	var t SpriteTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, malformed("sprites: %v", err)
	}
	if len(t) == 0 {
		return nil, malformed("sprites: table is empty")
	}
	return t, nil
}

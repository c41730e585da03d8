// Package assets parses the map, sprite table and glyph atlas files the game
// unit and the terminal backend are built from. Every format has an embedded
// default so the game runs without any files on disk.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/comfy-wars/internal/config"
)

//go:embed defaults/map.yaml
var defaultMap []byte

//go:embed defaults/sprites.json
var defaultSprites []byte

//go:embed defaults/atlas.yaml
var defaultAtlas []byte

// ErrMalformed is wrapped by every parse error in this package.
var ErrMalformed = errors.New("assets: malformed")

// DefaultMap returns the embedded map source.
func DefaultMap() []byte { return defaultMap }

// DefaultSprites returns the embedded sprite table source.
func DefaultSprites() []byte { return defaultSprites }

// DefaultAtlas returns the embedded atlas source.
func DefaultAtlas() []byte { return defaultAtlas }

// read returns the contents of path, or fallback when path is empty.
func read(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", expanded, err)
	}
	return data, nil
}

// LoadMap reads and parses a map file. An empty path loads the embedded map.
func LoadMap(path string) (*Map, error) {
	data, err := read(path, defaultMap)
	if err != nil {
		return nil, err
	}
	return ParseMap(data)
}

// LoadSprites reads and parses a sprite table. An empty path loads the
// embedded table.
func LoadSprites(path string) (SpriteTable, error) {
	data, err := read(path, defaultSprites)
	if err != nil {
		return nil, err
	}
	return ParseSprites(data)
}

// LoadAtlas reads and parses a glyph atlas. An empty path loads the embedded
// atlas.
func LoadAtlas(path string) (*Atlas, error) {
	data, err := read(path, defaultAtlas)
	if err != nil {
		return nil, err
	}
	return ParseAtlas(data)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}

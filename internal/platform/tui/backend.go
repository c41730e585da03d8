package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/comfy-wars/internal/assets"
	"github.com/vovakirdan/comfy-wars/internal/core"
)

// Terminal cell size in world pixels. A 16px tile covers two columns and
// one row.
const (
	CellW = core.TileSize / 2
	CellH = core.TileSize
)

// Backend is the terminal implementation of core.Context. Draw calls are
// deferred and flushed into a Screen by Present.
type Backend struct {
	screen   *core.Screen
	buf      core.DrawBuffer
	atlases  map[string]*assets.Atlas
	pressed  map[core.Button]bool
	pointer  core.FPos
	start    time.Time
	last     time.Time
	time     float64
	delta    float64
	fps      float64
	tickRate int
}

// NewBackend creates a backend drawing into a cols x rows screen.
func NewBackend(cols, rows, tickRate int) *Backend {
	if tickRate <= 0 {
		tickRate = 60
	}
	b := &Backend{
		screen:   core.NewScreen(cols, rows),
		atlases:  make(map[string]*assets.Atlas),
		pressed:  make(map[core.Button]bool),
		tickRate: tickRate,
		delta:    1 / float64(tickRate),
		fps:      float64(tickRate),
	}
	b.pointer = cellCentre(0, 0)
	return b
}

// Screen returns the screen the backend presents into.
func (b *Backend) Screen() *core.Screen {
	return b.screen
}

// Resize changes the screen size and keeps the pointer on screen.
func (b *Backend) Resize(cols, rows int) {
	b.screen.Resize(cols, rows)
	b.MovePointer(0, 0)
}

// Advance starts a frame at now. The first frame uses the nominal tick
// length as its delta.
func (b *Backend) Advance(now time.Time) {
	if b.start.IsZero() {
		b.start = now
		b.last = now
		return
	}
	dt := now.Sub(b.last).Seconds()
	b.last = now
	if dt <= 0 {
		return
	}
	b.delta = dt
	b.time = now.Sub(b.start).Seconds()
	// Exponential smoothing keeps the FPS line readable.
	b.fps = b.fps*0.9 + (1/dt)*0.1
}

// Present clears the screen, runs the deferred draw calls and releases the
// buttons pressed during the frame.
func (b *Backend) Present() {
	b.screen.Clear()
	b.buf.Flush()
	clear(b.pressed)
}

// Press marks a button as pressed for the next frame.
func (b *Backend) Press(btn core.Button) {
	b.pressed[btn] = true
}

// MovePointer moves the pointer by whole tiles, clamped to the screen.
func (b *Backend) MovePointer(dx, dy int) {
	tile := core.WorldToGame(b.pointer)
	maxX := b.screen.Width()*CellW/core.TileSize - 1
	maxY := b.screen.Height()*CellH/core.TileSize - 1
	tile.X = core.Clamp(tile.X+dx, 0, max(maxX, 0))
	tile.Y = core.Clamp(tile.Y+dy, 0, max(maxY, 0))
	w := tile.World()
	b.pointer = core.FPos{X: w.X + core.TileSize/2, Y: w.Y + core.TileSize/2}
}

// PointAtCell moves the pointer to the centre of a terminal cell.
func (b *Backend) PointAtCell(col, row int) {
	b.pointer = cellCentre(col, row)
}

func cellCentre(col, row int) core.FPos {
	return core.FPos{X: float64(col*CellW) + CellW/2, Y: float64(row*CellH) + CellH/2}
}

// cells returns the cell span covered by a world rectangle.
func cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / CellW))
	y0 = int(math.Floor(r.Y / CellH))
	x1 = int(math.Ceil(r.Right() / CellW))
	y1 = int(math.Ceil(r.Bottom() / CellH))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// DrawRect implements core.Renderer. Translucent colours are blended over
// the cell background.
func (b *Backend) DrawRect(r core.Rect, c core.Color, z int) {
	b.buf.Push(z, func() {
		x0, y0, x1, y1 := cells(r)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				b.screen.SetBG(x, y, blend(b.screen.GetCell(x, y).BG, c))
			}
		}
	})
}

func blend(dst, src core.Color) core.Color {
	if src.A >= 1 {
		return src
	}
	if dst.A == 0 {
		dst = core.Black
	}
	a := core.ClampF(src.A, 0, 1)
	return core.RGBA(
		src.R*a+dst.R*(1-a),
		src.G*a+dst.G*(1-a),
		src.B*a+dst.B*(1-a),
		1,
	)
}

// DrawText implements core.Renderer. The size is ignored; a terminal has
// one font size.
func (b *Backend) DrawText(text string, _ float64, x, y float64, z int) {
	b.buf.Push(z, func() {
		b.screen.DrawText(int(math.Floor(x/CellW)), int(math.Floor(y/CellH)), text, core.White)
	})
}

// DrawTextureRegion implements core.Renderer.
func (b *Backend) DrawTextureRegion(name string, src core.Rect, x, y float64, z int) {
	b.DrawTextureRegionScaled(name, src, core.NewRect(x, y, src.W, src.H), z)
}

// DrawTextureRegionScaled implements core.Renderer. The glyph for the
// region's origin is written into the first row of the destination; spaces
// in the glyph leave the runes below visible.
func (b *Backend) DrawTextureRegionScaled(name string, src, dst core.Rect, z int) {
	atlas, ok := b.atlases[name]
	if !ok {
		b.DrawText(fmt.Sprintf("ERROR('%s')", name), dst.H, dst.X, dst.Y, z)
		return
	}
	g, ok := atlas.Glyph(src.X, src.Y)
	if !ok {
		g = assets.Glyph{Text: "??", FG: core.Red}
	}
	b.buf.Push(z, func() {
		x0, y0, x1, y1 := cells(dst)
		if g.BG.A > 0 {
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					b.screen.SetBG(x, y, blend(b.screen.GetCell(x, y).BG, g.BG))
				}
			}
		}
		x := x0
		for _, r := range g.Text {
			if x >= x1 {
				break
			}
			if r != ' ' {
				b.screen.SetRune(x, y0, r, g.FG)
			}
			x++
		}
	})
}

// LoadTexture implements core.Renderer. Textures are glyph atlases.
func (b *Backend) LoadTexture(name, path string) error {
	a, err := assets.LoadAtlas(path)
	if err != nil {
		return fmt.Errorf("tui: texture %s: %w", name, err)
	}
	b.atlases[name] = a
	return nil
}

// TextureDimensions implements core.Renderer.
func (b *Backend) TextureDimensions(name string) (float64, float64, bool) {
	a, ok := b.atlases[name]
	if !ok {
		return 0, 0, false
	}
	return a.Width, a.Height, true
}

// Time implements core.Input.
func (b *Backend) Time() float64 { return b.time }

// Delta implements core.Input.
func (b *Backend) Delta() float64 { return b.delta }

// FPS implements core.Input.
func (b *Backend) FPS() int { return int(b.fps + 0.5) }

// IsPressed implements core.Input.
func (b *Backend) IsPressed(btn core.Button) bool { return b.pressed[btn] }

// PointerScreen implements core.Input.
func (b *Backend) PointerScreen() core.FPos { return b.pointer }

// PointerWorld implements core.Input. The view is not scrolled, so it is
// the same as the screen position.
func (b *Backend) PointerWorld() core.FPos { return b.pointer }

var _ core.Context = (*Backend)(nil)

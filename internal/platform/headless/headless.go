// Package headless provides a core.Context that draws nothing. It records
// the flushed draw commands and takes scripted input, so the host and the
// game can run without a terminal, in tests and in the headless CLI mode.
package headless

import (
	"fmt"

	"github.com/vovakirdan/comfy-wars/internal/assets"
	"github.com/vovakirdan/comfy-wars/internal/core"
)

// Kind identifies a recorded draw call.
type Kind int

const (
	KindRect Kind = iota
	KindText
	KindTexture
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is one executed draw call.
type Command struct {
	Kind    Kind
	Z       int
	Texture string    // KindTexture
	Src     core.Rect // KindTexture
	Dst     core.Rect // KindRect and KindTexture
	Color   core.Color
	Text    string // KindText
}

type texture struct {
	w, h float64
}

// Context is a recording core.Context with a fixed frame delta.
type Context struct {
	buf      core.DrawBuffer
	commands []Command
	textures map[string]texture
	pressed  map[core.Button]bool
	pointer  core.FPos
	time     float64
	delta    float64
	frames   int
}

// New creates a context advancing delta seconds per frame.
func New(delta float64) *Context {
	return &Context{
		textures: make(map[string]texture),
		pressed:  make(map[core.Button]bool),
		delta:    delta,
	}
}

// Press marks buttons as pressed for the current frame.
func (c *Context) Press(buttons ...core.Button) {
	for _, b := range buttons {
		c.pressed[b] = true
	}
}

// PointAt moves the pointer to the centre of tile p.
func (c *Context) PointAt(p core.Pos) {
	w := p.World()
	c.pointer = core.FPos{X: w.X + core.TileSize/2, Y: w.Y + core.TileSize/2}
}

// SetPointer moves the pointer to a world position.
func (c *Context) SetPointer(p core.FPos) {
	c.pointer = p
}

// EndFrame executes the deferred draw calls, replacing the recorded
// commands, releases all buttons and advances the clock.
func (c *Context) EndFrame() {
	c.commands = c.commands[:0]
	c.buf.Flush()
	clear(c.pressed)
	c.time += c.delta
	c.frames++
}

// Commands returns the commands executed by the last EndFrame, in the
// order they ran. The slice is reused by the next EndFrame.
func (c *Context) Commands() []Command {
	return c.commands
}

// Frames returns the number of completed frames.
func (c *Context) Frames() int {
	return c.frames
}

func (c *Context) record(z int, cmd Command) {
	cmd.Z = z
	c.buf.Push(z, func() { c.commands = append(c.commands, cmd) })
}

// DrawRect implements core.Renderer.
func (c *Context) DrawRect(r core.Rect, col core.Color, z int) {
	c.record(z, Command{Kind: KindRect, Dst: r, Color: col})
}

// DrawText implements core.Renderer.
func (c *Context) DrawText(text string, size, x, y float64, z int) {
	c.record(z, Command{Kind: KindText, Text: text, Dst: core.NewRect(x, y, 0, size), Color: core.White})
}

// DrawTextureRegion implements core.Renderer.
func (c *Context) DrawTextureRegion(name string, src core.Rect, x, y float64, z int) {
	c.DrawTextureRegionScaled(name, src, core.NewRect(x, y, src.W, src.H), z)
}

// DrawTextureRegionScaled implements core.Renderer. An unknown texture
// draws an error marker in its place.
func (c *Context) DrawTextureRegionScaled(name string, src, dst core.Rect, z int) {
	if _, ok := c.textures[name]; !ok {
		c.DrawText(fmt.Sprintf("ERROR('%s')", name), dst.H, dst.X, dst.Y, z)
		return
	}
	c.record(z, Command{Kind: KindTexture, Texture: name, Src: src, Dst: dst})
}

// LoadTexture implements core.Renderer. Textures are glyph atlases; only
// their size is kept.
func (c *Context) LoadTexture(name, path string) error {
	a, err := assets.LoadAtlas(path)
	if err != nil {
		return err
	}
	c.textures[name] = texture{w: a.Width, h: a.Height}
	return nil
}

// TextureDimensions implements core.Renderer.
func (c *Context) TextureDimensions(name string) (float64, float64, bool) {
	t, ok := c.textures[name]
	return t.w, t.h, ok
}

// Time implements core.Input.
func (c *Context) Time() float64 { return c.time }

// Delta implements core.Input.
func (c *Context) Delta() float64 { return c.delta }

// FPS implements core.Input.
func (c *Context) FPS() int {
	if c.delta <= 0 {
		return 0
	}
	return int(1/c.delta + 0.5)
}

// IsPressed implements core.Input.
func (c *Context) IsPressed(b core.Button) bool { return c.pressed[b] }

// PointerScreen implements core.Input. There is no camera, so screen and
// world positions are the same.
func (c *Context) PointerScreen() core.FPos { return c.pointer }

// PointerWorld implements core.Input.
func (c *Context) PointerWorld() core.FPos { return c.pointer }

var _ core.Context = (*Context)(nil)

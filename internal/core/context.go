package core

// Button is a semantic input button, abstracted from physical keys and mouse
// buttons by the platform backend.
type Button int

const (
	ButtonNone Button = iota
	MouseLeft         // primary click, Space in the terminal
	MouseRight        // secondary click, Backspace in the terminal
	ButtonConfirm     // Enter
	ButtonCancel      // Escape
	ButtonEndTurn     // E
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "None"
	case MouseLeft:
		return "MouseLeft"
	case MouseRight:
		return "MouseRight"
	case ButtonConfirm:
		return "Confirm"
	case ButtonCancel:
		return "Cancel"
	case ButtonEndTurn:
		return "EndTurn"
	default:
		return "Unknown"
	}
}

// Renderer is the drawing capability handed to the loadable unit.
// All draw calls are deferred and flushed once per frame, sorted ascending by
// z so that higher z draws on top.
type Renderer interface {
	DrawRect(r Rect, c Color, z int)
	DrawText(text string, size float64, x, y float64, z int)
	DrawTextureRegion(name string, src Rect, x, y float64, z int)
	DrawTextureRegionScaled(name string, src, dst Rect, z int)
	LoadTexture(name, path string) error
	TextureDimensions(name string) (w, h float64, ok bool)
}

// Input is the input and clock capability handed to the loadable unit.
type Input interface {
	// Time returns seconds since program start.
	Time() float64
	// Delta returns seconds elapsed since the previous frame.
	Delta() float64
	FPS() int
	// IsPressed reports whether b was pressed during the current frame.
	IsPressed(b Button) bool
	PointerScreen() FPos
	PointerWorld() FPos
}

// Context is the full capability a backend provides to each frame.
// Any backend implementing it is substitutable, including headless ones.
type Context interface {
	Renderer
	Input
}

package core

// Color is an RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA creates a colour from its components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns a copy of c with a different alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Predefined colours for game elements.
var (
	Black  = Color{0, 0, 0, 1}
	White  = Color{1, 1, 1, 1}
	Red    = Color{0.9, 0.2, 0.2, 1}
	Blue   = Color{0.2, 0.4, 0.95, 1}
	Green  = Color{0.2, 0.8, 0.3, 1}
	Yellow = Color{0.95, 0.85, 0.2, 1}
	Gray   = Color{0.5, 0.5, 0.5, 1}
)

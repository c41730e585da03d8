package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// hexColor converts a core.Color to a lipgloss colour.
func hexColor(c core.Color) lipgloss.Color {
	to8 := func(v float64) int { return int(core.ClampF(v, 0, 1)*255 + 0.5) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B)))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape
// sequences. A nil renderer uses the lipgloss default.
func RenderScreen(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style := r.NewStyle().Foreground(hexColor(start.FG))
			if start.BG.A > 0 {
				style = style.Background(hexColor(start.BG))
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

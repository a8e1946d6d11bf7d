package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/epistemiq/epistemiq/internal/ui/theme"
)

// ProgressBar is the horizontal accuracy bar on the dashboard rows.
type ProgressBar struct {
	Percent float64
	Width   int
}

// NewProgressBar creates a bar filled to percent of width cells.
// Percent is clamped to [0, 1].
func NewProgressBar(percent float64, width int) ProgressBar {
	return ProgressBar{Percent: percent, Width: width}
}

func (p ProgressBar) View() string {
	width := p.Width
	if width < 4 {
		width = 4
	}

	filled := int(float64(width) * p.Percent)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().
			Background(theme.Border).
			Render(strings.Repeat(" ", width-filled))
}

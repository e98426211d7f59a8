package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/ui/theme"
)

// lowThreshold is the fraction under which a countdown turns red.
const lowThreshold = 0.25

// ProgressBar displays a horizontal bar, used for countdowns.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
}

// NewCountdownBar creates a bar for remaining out of total seconds.
func NewCountdownBar(label string, remaining, total, width int) ProgressBar {
	var pct float64
	if total > 0 {
		pct = float64(remaining) / float64(total)
	}
	return ProgressBar{
		Label:   label,
		Percent: pct,
		Suffix:  fmt.Sprintf("%2d s", remaining),
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + p.Suffix
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	if p.Percent > 0 && filled == 0 {
		filled = 1
	}

	fill := theme.ProgressFilled
	if p.Percent < lowThreshold {
		fill = theme.ProgressLow
	}

	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return result
}

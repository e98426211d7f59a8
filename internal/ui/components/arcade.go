package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/ui/theme"
)

// Sections inside the cabinet share one width, clamped so boxes neither
// collapse on narrow terminals nor stretch on wide ones.
const (
	cabinetChrome   = 6 // double border plus horizontal padding
	minSectionWidth = 20
	maxSectionWidth = 60
)

// ContentWidth is the width every section inside a cabinet of frameWidth
// is drawn at.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-cabinetChrome, minSectionWidth), maxSectionWidth)
}

var cabinetStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(theme.Primary).
	Align(lipgloss.Center, lipgloss.Center)

// CabinetFrame fills width x height with a double border and centers
// content inside it.
func CabinetFrame(content string, width, height int) string {
	return cabinetStyle.Width(width - 2).Height(height - 2).Render(content)
}

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Align(lipgloss.Center).
	Padding(1, 2)

// ArcadeCard boxes content at width cw. The border takes the accent color,
// or the theme border when accent is nil.
func ArcadeCard(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return cardStyle.Width(cw - 2).BorderForeground(accent).Render(content)
}

var (
	buttonStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	buttonIdle = buttonStyle.
			Foreground(theme.Text).
			BorderForeground(theme.Border)
	buttonLit = buttonStyle.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow)
)

// ArcadeButton draws one menu entry. The selected entry is lit and marked
// with a cursor.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return buttonLit.Width(width).Render("▸ " + label)
	}
	return buttonIdle.Width(width).Render(label)
}

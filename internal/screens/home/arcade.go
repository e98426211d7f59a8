package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/screens/welcome"
	"github.com/pugivik/sumas/internal/ui/components"
	"github.com/pugivik/sumas/internal/ui/theme"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := welcome.BannerArt
	if compact {
		title = welcome.BannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// statsView is the data rendered in the stats bar.
type statsView struct {
	mode     string // selected mode, empty when the cursor is not on one
	best     string // empty when the mode has no finished session
	sessions int
	accuracy float64
	compact  bool
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(v statsView, cw int) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	playedStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	acc := fmt.Sprintf("%.0f%%", v.accuracy*100)

	var parts []string
	if v.compact {
		parts = append(parts, bestText(v, true, bestStyle, dimStyle),
			playedStyle.Render(fmt.Sprintf("▶%d", v.sessions)),
			accStyle.Render("✓"+acc))
	} else {
		parts = append(parts, bestText(v, false, bestStyle, dimStyle),
			playedStyle.Render(fmt.Sprintf("▶ %d PARTIDAS", v.sessions)),
			accStyle.Render("✓ "+acc))
	}
	sep := "  "
	if v.compact {
		sep = " "
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, sep))
}

func bestText(v statsView, compact bool, active, dim lipgloss.Style) string {
	switch {
	case v.mode == "":
		if compact {
			return dim.Render("★-")
		}
		return dim.Render("★ RÉCORD -")
	case v.best == "":
		if compact {
			return dim.Render("★-")
		}
		return dim.Render("★ SIN RÉCORD")
	case compact:
		return active.Render("★" + v.best)
	}
	return active.Render("★ RÉCORD " + v.best)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	buttons := make([]string, 0, len(items))
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(mood Mood, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(mood.render())
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

package home

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/ui/theme"
)

// Mood picks the mascot face from the latest session.
type Mood int

const (
	MoodCalm    Mood = iota
	MoodProud        // latest session matched the mode record
	MoodWorried      // latest session ended below zero
)

// face is a pocket calculator: two eyes over a three-cell display.
type face struct {
	above   string
	eyes    string
	display string
	side    string
	tint    color.Color
}

var faces = map[Mood]face{
	MoodCalm:    {eyes: "◉ ◉", display: "2+2", tint: theme.Primary},
	MoodProud:   {above: "✦     ✦", eyes: "★ ★", display: "=4!", tint: theme.ArcadeYellow},
	MoodWorried: {eyes: "◉ ◉", display: "2+?", side: " ?", tint: theme.Accent},
}

// render draws the mascot in its mood color.
func (m Mood) render() string {
	f, ok := faces[m]
	if !ok {
		f = faces[MoodCalm]
	}

	var lines []string
	if f.above != "" {
		lines = append(lines, f.above)
	}
	lines = append(lines,
		"╭─────╮",
		"│ "+f.eyes+" │"+f.side,
		"│ ▔▔▔ │",
		"│ "+f.display+" │",
		"╰─────╯",
	)
	return lipgloss.NewStyle().Foreground(f.tint).Render(strings.Join(lines, "\n"))
}

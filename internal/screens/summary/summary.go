package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/screen"
	"github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/ui/layout"
	"github.com/pugivik/sumas/internal/ui/theme"
)

// SummaryScreen displays the result of a finished session.
type SummaryScreen struct {
	summary *session.SessionSummary
	replay  func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. replay builds a fresh session with the
// same settings; when nil, Enter behaves like Esc.
func New(summary *session.SessionSummary, replay func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, replay: replay}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resumen"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.replay == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Menú"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Jugar otra vez"},
		{Key: "Esc", Description: "Menú"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		if s.replay != nil {
			next := s.replay()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Centered(headline(sum.Reason), width, theme.Title))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if sum.Score < 0 {
		scoreStyle = scoreStyle.Foreground(theme.Error)
	}
	b.WriteString(layout.Centered(fmt.Sprintf("Puntuación final: %d", sum.Score), width, scoreStyle))
	b.WriteString("\n")
	b.WriteString(layout.Centered(fmt.Sprintf("Modo %s   Duración %s",
		sum.Mode.DisplayName(), layout.FormatSeconds(int(sum.Duration.Seconds()))), width, theme.Subtitle))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 40), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, row := range rows(sum) {
		line := fmt.Sprintf("%-16s %5s", row.label, row.value)
		b.WriteString(layout.Centered(line, width, lipgloss.NewStyle().Foreground(row.color)))
		b.WriteString("\n")
	}

	return b.String()
}

type row struct {
	label string
	value string
	color color.Color
}

func rows(sum *session.SessionSummary) []row {
	out := []row{
		{"Resueltos", fmt.Sprint(sum.Resolved), theme.Text},
		{"Correctas", fmt.Sprint(sum.Correct), theme.Success},
		{"Incorrectas", fmt.Sprint(sum.Incorrect), theme.Error},
		{"Inválidas", fmt.Sprint(sum.Invalid), theme.Warning},
	}
	if sum.Timeouts > 0 || sum.Late > 0 {
		out = append(out,
			row{"Sin tiempo", fmt.Sprint(sum.Timeouts), theme.Error},
			row{"Fuera de tiempo", fmt.Sprint(sum.Late), theme.TextDim},
		)
	}
	out = append(out, row{"Precisión", fmt.Sprintf("%.0f%%", sum.Accuracy*100), theme.Secondary})
	return out
}

func headline(reason session.EndReason) string {
	switch reason {
	case session.EndExercises:
		return "¡Ejercicios completados!"
	case session.EndTimeUp:
		return "¡Se acabó el tiempo!"
	case session.EndQuit:
		return "Partida terminada"
	}
	return "Fin de la partida"
}

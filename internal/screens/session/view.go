package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/ui/components"
	"github.com/pugivik/sumas/internal/ui/layout"
	"github.com/pugivik/sumas/internal/ui/theme"
)

// statusLine is the header summary: score and exercise progress.
func statusLine(st sess.SessionState) string {
	status := fmt.Sprintf("Puntos: %d", st.Score)
	if st.TotalExercises > 0 && st.ExerciseIndex > 0 {
		idx := min(st.ExerciseIndex, st.TotalExercises)
		status = fmt.Sprintf("Ejercicio %d/%d   %s", idx, st.TotalExercises, status)
	}
	return status
}

// renderPlay renders the problem, countdowns, input and current notice.
func (s *SessionScreen) renderPlay(width, height int) string {
	st := s.state
	barWidth := min(width-8, 50)

	var b strings.Builder
	b.WriteString("\n")

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Modo: " + st.Mode.DisplayName())
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(statusLine(st))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if st.Problem != nil && !st.GameOver {
		card := components.ArcadeCard(theme.Title.Render(st.Problem.Text()), min(components.ContentWidth(width), 30), s.cardAccent())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n\n")
	}

	if s.cfg.HasProblemTimer() && st.ProblemTimerActive {
		total := s.cfg.ProblemSeconds + s.cfg.BonusSeconds
		bar := components.NewCountdownBar("Tiempo      ", st.ProblemTimeRemaining, max(total, st.ProblemTimeRemaining), barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	if s.cfg.HasGameTimer() {
		bar := components.NewCountdownBar("Tiempo total", st.GameTimeRemaining, s.cfg.GameSeconds, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !st.GameOver {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render("Respuesta: ")+s.input.View()))
		b.WriteString("\n\n")
	}

	if s.notice != nil {
		b.WriteString(layout.Centered(s.notice.Message, width, noticeStyle(s.notice.Outcome)))
		b.WriteString("\n")
	}

	if st.GameOver {
		b.WriteString("\n")
		b.WriteString(layout.Centered("Pulsa cualquier tecla para ver el resumen.", width, theme.Hint))
	}

	return b.String()
}

// cardAccent tints the problem card with the outcome of the last answer
// while its notice is on screen.
func (s *SessionScreen) cardAccent() color.Color {
	if s.notice == nil {
		return nil
	}
	return noticeStyle(s.notice.Outcome).GetForeground()
}

func noticeStyle(o sess.Outcome) lipgloss.Style {
	switch o {
	case sess.OutcomeCorrect:
		return theme.Correct
	case sess.OutcomeIncorrect, sess.OutcomeTimeout:
		return theme.Incorrect
	case sess.OutcomeGameOver:
		return theme.Title
	}
	return theme.Caution
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered("¿Terminar la partida?", width, theme.Title))
	b.WriteString("\n")
	b.WriteString(layout.Centered("El reloj sigue corriendo.", width, theme.Subtitle))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered("[S] Sí, terminar", width,
		lipgloss.NewStyle().Foreground(theme.Success)))
	b.WriteString("\n")
	b.WriteString(layout.Centered("[N] No, seguir jugando", width,
		lipgloss.NewStyle().Foreground(theme.Primary)))
	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return layout.Centered(fmt.Sprintf("\n\n\n  Error: %s\n\n  Pulsa cualquier tecla para volver.", errMsg), width,
		lipgloss.NewStyle().Foreground(theme.Error))
}

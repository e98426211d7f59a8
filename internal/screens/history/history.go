package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/screen"
	"github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/store"
	"github.com/pugivik/sumas/internal/ui/layout"
	"github.com/pugivik/sumas/internal/ui/theme"
)

// pageSize is how many past sessions are listed.
const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEventRecord
	Err       error
}

// HistoryScreen lists past sessions. Enter expands a session into its
// answer log, loaded on first use.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	answers   map[string][]store.AnswerEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	if repo == nil {
		s.loaded = true
		return nil
	}
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Historial"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Detalles"},
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if s.expanded[s.selected] {
				return s, s.loadAnswers(s.sessions[s.selected].SessionID)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	if _, ok := s.answers[sessionID]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswerEvents(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Cargando historial...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Aún no hay partidas. ¡A practicar!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + sessionLine(rec)

		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(rec.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	answers, ok := s.answers[sessionID]
	dim := theme.Hint
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Cargando...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Sin respuestas registradas")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(outcomeColor(a.Outcome)).Render(answerLine(a))))
		b.WriteString("\n")
	}
	return b.String()
}

func sessionLine(rec store.SessionSummaryRecord) string {
	mode := session.Mode(rec.Mode).DisplayName()
	return fmt.Sprintf("%s  %-12s  %4d pts  %d/%d  %s",
		rec.Timestamp.Local().Format("02/01/2006 15:04"),
		mode, rec.Score, rec.Correct, rec.Resolved(),
		layout.FormatSeconds(rec.DurationSecs))
}

func answerLine(a store.AnswerEventRecord) string {
	answer := a.Answer
	if session.Outcome(a.Outcome) == session.OutcomeTimeout {
		answer = "—"
	}
	return fmt.Sprintf("    #%-2d %2d + %2d = %-6s %-10s %+d",
		a.ProblemSeq, a.Operand1, a.Operand2, answer, outcomeLabel(a.Outcome), a.Delta)
}

func outcomeLabel(o string) string {
	switch session.Outcome(o) {
	case session.OutcomeCorrect:
		return "correcta"
	case session.OutcomeIncorrect:
		return "incorrecta"
	case session.OutcomeInvalid:
		return "inválida"
	case session.OutcomeTimeout:
		return "sin tiempo"
	}
	return o
}

func outcomeColor(o string) color.Color {
	switch session.Outcome(o) {
	case session.OutcomeCorrect:
		return theme.Success
	case session.OutcomeIncorrect, session.OutcomeTimeout:
		return theme.Error
	case session.OutcomeInvalid:
		return theme.Warning
	default:
		return theme.Text
	}
}

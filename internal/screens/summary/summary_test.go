package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/screen"
	"github.com/pugivik/sumas/internal/session"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		SessionID: "s-1",
		Mode:      session.ModeTimed,
		Score:     31,
		Reason:    session.EndExercises,
		Resolved:  15,
		Correct:   12,
		Incorrect: 1,
		Invalid:   1,
		Timeouts:  1,
		Late:      2,
		Accuracy:  float64(12) / float64(15),
		Duration:  3*time.Minute + 5*time.Second,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Resumen" {
		t.Errorf("Title = %q, want %q", s.Title(), "Resumen")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := s.View(80, 24)
	for _, want := range []string{"Puntuación final: 31", "Contrarreloj", "3:05", "80%", "Fuera de tiempo"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_HidesTimerRowsWithoutTimeouts(t *testing.T) {
	sum := testSummary()
	sum.Timeouts, sum.Late = 0, 0
	view := New(sum, nil).View(80, 24)
	if strings.Contains(view, "Sin tiempo") {
		t.Error("timeout row shown for a session without timeouts")
	}
}

func TestSummaryScreen_Headline(t *testing.T) {
	tests := []struct {
		reason session.EndReason
		want   string
	}{
		{session.EndExercises, "¡Ejercicios completados!"},
		{session.EndTimeUp, "¡Se acabó el tiempo!"},
		{session.EndQuit, "Partida terminada"},
	}
	for _, tt := range tests {
		if got := headline(tt.reason); got != tt.want {
			t.Errorf("headline(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestSummaryScreen_Enter_Replays(t *testing.T) {
	replayed := New(nil, nil)
	s := New(testSummary(), func() screen.Screen { return replayed })

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", cmd())
	}
	if msg.Screen != replayed {
		t.Error("Enter did not replace with the replay screen")
	}
}

func TestSummaryScreen_Enter_WithoutReplayPops(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if hints := New(testSummary(), nil).KeyHints(); len(hints) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(hints))
	}
	replay := func() screen.Screen { return nil }
	if hints := New(testSummary(), replay).KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

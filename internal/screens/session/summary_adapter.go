package session

import (
	"github.com/pugivik/sumas/internal/screen"
	"github.com/pugivik/sumas/internal/screens/summary"
	sess "github.com/pugivik/sumas/internal/session"
)

// newSummaryScreenAdapter creates a summary screen from session data.
func newSummaryScreenAdapter(s *sess.SessionSummary, replay func() screen.Screen) screen.Screen {
	return summary.New(s, replay)
}

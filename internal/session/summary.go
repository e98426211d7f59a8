package session

import "time"

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID string
	Mode      Mode
	Score     int
	Reason    EndReason

	Resolved  int
	Correct   int
	Incorrect int
	Invalid   int
	Timeouts  int
	Late      int
	Accuracy  float64

	Duration time.Duration
}

// BuildSummary creates a SessionSummary from a state snapshot.
func BuildSummary(state SessionState) *SessionSummary {
	resolved := state.Resolved()

	var accuracy float64
	if resolved > 0 {
		accuracy = float64(state.Correct) / float64(resolved)
	}

	var duration time.Duration
	if !state.EndedAt.IsZero() {
		duration = state.EndedAt.Sub(state.StartedAt)
	}

	return &SessionSummary{
		SessionID: state.SessionID,
		Mode:      state.Mode,
		Score:     state.Score,
		Reason:    state.EndReason,
		Resolved:  resolved,
		Correct:   state.Correct,
		Incorrect: state.Incorrect,
		Invalid:   state.Invalid,
		Timeouts:  state.Timeouts,
		Late:      state.Late,
		Accuracy:  accuracy,
		Duration:  duration,
	}
}

package session

import (
	"time"

	"github.com/pugivik/sumas/internal/problemgen"
)

// Phase is derived from the state fields; it is not stored.
type Phase int

const (
	PhaseIdle     Phase = iota // before the first Start
	PhaseActive                // a problem is in play
	PhaseGameOver              // terminal until the next Start
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game-over"
	}
	return "idle"
}

// EndReason records why a session reached game over.
type EndReason string

const (
	EndNone      EndReason = ""
	EndExercises EndReason = "exercises" // exercise count exhausted
	EndTimeUp    EndReason = "time-up"   // game timer reached zero
	EndQuit      EndReason = "quit"      // closed by the player
)

// Outcome classifies what happened to a submission or a problem.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeLate      Outcome = "late"     // aimed at a problem that already timed out
	OutcomeIgnored   Outcome = "ignored"  // no problem in play
	OutcomeGameOver  Outcome = "game-over" // only used for notices
)

// Scored reports whether the outcome resolved a problem.
func (o Outcome) Scored() bool {
	switch o {
	case OutcomeCorrect, OutcomeIncorrect, OutcomeInvalid, OutcomeTimeout:
		return true
	}
	return false
}

// SessionState is the single source of truth for a session. Observers
// receive copies; Problem points at an immutable value.
type SessionState struct {
	SessionID string
	Mode      Mode

	Score int

	// ExerciseIndex counts problems started (1-based). It only moves when
	// an exercise limit is configured.
	ExerciseIndex  int
	TotalExercises int

	GameOver  bool
	EndReason EndReason

	// Problem is nil before the first round.
	Problem *problemgen.Problem

	ProblemTimeRemaining int
	ProblemTimerActive   bool

	GameTimeRemaining int
	GameTimerActive   bool

	// PendingBonusSeconds is added to the next problem's countdown.
	PendingBonusSeconds int

	// Epoch invalidates problem-timer ticks scheduled before it changed.
	Epoch uint64

	// GameEpoch invalidates game-timer ticks. It is separate from Epoch so
	// that starting a new problem does not cancel the game countdown.
	GameEpoch uint64

	Correct   int
	Incorrect int
	Invalid   int
	Timeouts  int
	Late      int

	StartedAt time.Time
	EndedAt   time.Time

	// Version increases on every mutation so observers can drop stale copies.
	Version uint64
}

// Phase derives the conceptual state.
func (s SessionState) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.Epoch == 0:
		return PhaseIdle
	}
	return PhaseActive
}

// Resolved is the number of problems that were scored.
func (s SessionState) Resolved() int {
	return s.Correct + s.Incorrect + s.Invalid + s.Timeouts
}

// Result describes one resolved (or rejected) submission or timeout.
type Result struct {
	SessionID string
	Seq       int
	Operand1  int
	Operand2  int

	// Answer is the raw input; empty for timeouts.
	Answer string

	Outcome    Outcome
	Delta      int
	ScoreAfter int

	// Elapsed is the time between the problem appearing and its resolution.
	Elapsed time.Duration
}

// Notice is a fire-and-forget message for the player.
type Notice struct {
	Outcome  Outcome
	Message  string
	Duration time.Duration
}

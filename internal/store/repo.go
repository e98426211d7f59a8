package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Mode   string    // exact mode match ("" = any)
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session starting or ending.
type SessionEventData struct {
	SessionID string
	Action    string
	Mode      string

	// Set on end events.
	Score      int
	Correct    int
	Incorrect  int
	Invalid    int
	Timeouts   int
	Late       int
	EndReason  string
	DurationMs int64
}

// AnswerEventData captures one resolved problem.
type AnswerEventData struct {
	SessionID  string
	Mode       string
	ProblemSeq int
	Operand1   int
	Operand2   int
	Answer     string
	Outcome    string
	Delta      int
	ScoreAfter int
	ElapsedMs  int64
}

// SessionSummaryRecord is a finished session as stored by its end event.
type SessionSummaryRecord struct {
	SessionID    string
	Mode         string
	Score        int
	Correct      int
	Incorrect    int
	Invalid      int
	Timeouts     int
	Late         int
	EndReason    string
	DurationSecs int
	Sequence     int64
	Timestamp    time.Time
}

// Resolved is the number of scored problems in the session.
func (r SessionSummaryRecord) Resolved() int {
	return r.Correct + r.Incorrect + r.Invalid + r.Timeouts
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// Totals aggregates every finished session.
type Totals struct {
	Sessions int
	Answers  int
	Correct  int
	Timeouts int
	Played   time.Duration
}

// Accuracy is the share of answers that were correct.
func (t Totals) Accuracy() float64 {
	if t.Answers == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answers)
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a resolved problem.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAnswerEvents returns the answers of one session in play order.
	QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)

	// BestScore returns the highest finished score for mode. ok is false
	// when no session of that mode has finished.
	BestScore(ctx context.Context, mode string) (best int, ok bool, err error)

	// Totals aggregates all finished sessions.
	Totals(ctx context.Context) (Totals, error)

	// Reset deletes every event.
	Reset(ctx context.Context) error
}

package session

import (
	sess "github.com/pugivik/sumas/internal/session"
)

// stateMsg carries a state snapshot emitted by the engine.
type stateMsg struct {
	State sess.SessionState
}

// resultMsg carries a resolved problem emitted by the engine.
type resultMsg struct {
	Result sess.Result
}

// noticeMsg carries a player notice emitted by the engine.
type noticeMsg struct {
	Notice sess.Notice
}

// eventBatchMsg holds every engine event queued since the last read, in order.
type eventBatchMsg []any

// noticeExpiredMsg clears the notice with the given id once its duration ends.
type noticeExpiredMsg struct {
	ID int
}

// summaryDueMsg moves to the summary screen after a finished session.
type summaryDueMsg struct{}

// persistedMsg reports a store write that finished.
type persistedMsg struct {
	What string
	Err  error
}

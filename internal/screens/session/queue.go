package session

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	sess "github.com/pugivik/sumas/internal/session"
)

// eventQueue bridges engine callbacks into the Bubble Tea loop. Pushes never
// block, so the engine may emit while the UI goroutine is inside a call to
// it. A single listener command drains the queue in emission order.
type eventQueue struct {
	mu    sync.Mutex
	items []any
	ready chan struct{}
	done  chan struct{}
	once  sync.Once
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func (q *eventQueue) push(msg any) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// drain returns and clears the pending events.
func (q *eventQueue) drain() []any {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// wait returns a command that blocks until events are pending or the queue
// is closed.
func (q *eventQueue) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			if items := q.drain(); len(items) > 0 {
				return eventBatchMsg(items)
			}
			select {
			case <-q.ready:
			case <-q.done:
				return nil
			}
		}
	}
}

func (q *eventQueue) close() {
	q.once.Do(func() { close(q.done) })
}

// Notify implements sess.Notifier.
func (q *eventQueue) Notify(n sess.Notice) { q.push(noticeMsg{Notice: n}) }

// Resolved implements sess.Observer.
func (q *eventQueue) Resolved(r sess.Result) { q.push(resultMsg{Result: r}) }

// Changed implements sess.Observer.
func (q *eventQueue) Changed(s sess.SessionState) { q.push(stateMsg{State: s}) }

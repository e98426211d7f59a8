// Package clock abstracts delayed callbacks so countdowns can be driven
// by wall time in the app and by simulated time in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer represents a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock provides time-related operations.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// System is the Clock backed by the standard library timers.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fake is a manually advanced Clock. Callbacks run synchronously on the
// goroutine calling Advance, in due-time order.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	nextID  int
	pending []*fakeTimer
}

type fakeTimer struct {
	clock   *Fake
	id      int
	due     time.Time
	f       func()
	stopped bool
}

// NewFake creates a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	t := &fakeTimer{clock: c, id: c.nextID, due: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending returns the number of callbacks that have not fired or been stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every callback that becomes
// due, including callbacks scheduled by callbacks fired along the way.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		t := c.popDue(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.due
		c.mu.Unlock()

		t.f()
	}
}

// popDue removes and returns the earliest live timer due at or before target.
func (c *Fake) popDue(target time.Time) *fakeTimer {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.pending = live

	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].due.Equal(c.pending[j].due) {
			return c.pending[i].id < c.pending[j].id
		}
		return c.pending[i].due.Before(c.pending[j].due)
	})
	if len(c.pending) == 0 || c.pending[0].due.After(target) {
		return nil
	}
	t := c.pending[0]
	c.pending = c.pending[1:]
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	for _, p := range t.clock.pending {
		if p == t {
			t.stopped = true
			return true
		}
	}
	return false
}

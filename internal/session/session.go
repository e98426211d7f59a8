package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pugivik/sumas/internal/clock"
	"github.com/pugivik/sumas/internal/problemgen"
)

// Notifier receives player-facing notices. Implementations must not call
// back into the Session synchronously.
type Notifier interface {
	Notify(n Notice)
}

// Observer receives resolved problems and state changes, in mutation order.
// Implementations must not call back into the Session synchronously.
type Observer interface {
	Resolved(r Result)
	Changed(s SessionState)
}

// Options configures a Session. Only Config is required.
type Options struct {
	Config    Config
	Generator problemgen.Generator
	Clock     clock.Clock
	Notifier  Notifier
	Observer  Observer

	// NewID generates session IDs. Defaults to random UUIDs.
	NewID func() string
}

// Session is the practice state machine. All mutations are serialized by
// mu; countdown ticks reacquire it on resume and compare the epoch they
// captured when scheduled, so a superseded tick never mutates state.
type Session struct {
	cfg      Config
	gen      problemgen.Generator
	clk      clock.Clock
	notifier Notifier
	observer Observer
	newID    func() string

	mu           sync.Mutex
	state        SessionState
	closed       bool
	problemTimer clock.Timer
	gameTimer    clock.Timer

	// emitMu is taken before mu is released so listeners see effects in
	// the order the mutations happened.
	emitMu sync.Mutex
}

// effects are collected under the state lock and delivered after it.
type effects struct {
	notices []Notice
	results []Result
	changed bool
}

// New creates an idle Session. Call Start to play.
func New(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s := &Session{
		cfg:      opts.Config,
		gen:      opts.Generator,
		clk:      opts.Clock,
		notifier: opts.Notifier,
		observer: opts.Observer,
		newID:    opts.NewID,
	}
	if s.gen == nil {
		s.gen = problemgen.NewRandom()
	}
	if s.clk == nil {
		s.clk = clock.System
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.state.Mode = s.cfg.Mode
	s.state.TotalExercises = s.cfg.TotalExercises
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start (re)initializes the session and serves the first problem. Any
// countdown from a previous run is invalidated.
func (s *Session) Start() SessionState {
	return s.update(func(fx *effects) {
		if s.closed {
			return
		}
		s.stopTimersLocked()

		prev := s.state
		s.state = SessionState{
			SessionID:      s.newID(),
			Mode:           s.cfg.Mode,
			Score:          s.cfg.InitialScore,
			TotalExercises: s.cfg.TotalExercises,
			Epoch:          prev.Epoch + 1,
			GameEpoch:      prev.GameEpoch + 1,
			Version:        prev.Version,
			StartedAt:      s.clk.Now(),
		}
		fx.changed = true

		if s.cfg.HasGameTimer() {
			s.state.GameTimeRemaining = s.cfg.GameSeconds
			s.state.GameTimerActive = true
			s.scheduleGameTickLocked()
		}
		s.startNewProblemLocked(fx)
	})
}

// Submit answers the problem currently in play.
func (s *Session) Submit(raw string) Result {
	return s.SubmitFor(0, raw)
}

// SubmitFor answers problem seq. A submission aimed at a problem that is
// no longer current (it timed out while the player was typing) is rejected
// as late and never scored. seq 0 means the current problem.
func (s *Session) SubmitFor(seq int, raw string) Result {
	var res Result
	s.update(func(fx *effects) {
		st := &s.state
		res = Result{SessionID: st.SessionID, Seq: seq, Answer: raw, ScoreAfter: st.Score}

		if s.closed || st.GameOver || st.Problem == nil {
			res.Outcome = OutcomeIgnored
			return
		}

		// A timeout always moves on to the next problem (or ends the game),
		// so an answer for an expired problem carries a stale seq.
		p := st.Problem
		if seq != 0 && seq != p.Seq {
			st.Late++
			fx.changed = true
			res.Outcome = OutcomeLate
			if s.cfg.NotifyLate {
				fx.notices = append(fx.notices, s.notice(OutcomeLate, lateMessage()))
			}
			return
		}

		// Cancel the countdown for this problem before anything else.
		st.ProblemTimerActive = false
		st.Epoch++
		if s.problemTimer != nil {
			s.problemTimer.Stop()
		}

		var msg string
		n, err := problemgen.ParseAnswer(raw)
		switch {
		case err != nil:
			res.Outcome = OutcomeInvalid
			res.Delta = s.cfg.Points.Invalid
			st.Invalid++
			msg = invalidMessage(res.Delta)
		case n == p.Sum():
			res.Outcome = OutcomeCorrect
			res.Delta = s.cfg.Points.Correct
			st.Correct++
		default:
			res.Outcome = OutcomeIncorrect
			res.Delta = s.cfg.Points.Incorrect
			st.Incorrect++
			msg = incorrectMessage(p.Sum(), res.Delta)
		}

		st.Score += res.Delta
		if res.Outcome == OutcomeCorrect {
			st.PendingBonusSeconds = s.cfg.BonusSeconds
			msg = correctMessage(res.Delta, st.PendingBonusSeconds)
		} else {
			st.PendingBonusSeconds = 0
		}

		res.Seq = p.Seq
		res.Operand1 = p.Operand1
		res.Operand2 = p.Operand2
		res.ScoreAfter = st.Score
		res.Elapsed = s.clk.Now().Sub(p.ShownAt)

		fx.changed = true
		fx.results = append(fx.results, res)
		fx.notices = append(fx.notices, s.notice(res.Outcome, msg))

		s.startNewProblemLocked(fx)
	})
	return res
}

// Close ends the session early and invalidates every pending countdown.
// Further events are ignored.
func (s *Session) Close() SessionState {
	return s.update(func(fx *effects) {
		if s.closed {
			return
		}
		if s.state.Phase() == PhaseActive {
			s.endLocked(fx, EndQuit)
		}
		s.closed = true
		s.stopTimersLocked()
	})
}

// startNewProblemLocked advances to the next round, or ends the session
// when the exercise count is exhausted.
func (s *Session) startNewProblemLocked(fx *effects) {
	st := &s.state
	if st.GameOver {
		return
	}
	fx.changed = true

	if s.cfg.HasExerciseLimit() {
		st.ExerciseIndex++
		if st.ExerciseIndex > s.cfg.TotalExercises {
			s.endLocked(fx, EndExercises)
			return
		}
	}

	seq := 1
	if st.Problem != nil {
		seq = st.Problem.Seq + 1
	}
	st.Problem = problemgen.New(s.gen, seq, s.clk.Now())

	st.ProblemTimeRemaining = s.cfg.ProblemSeconds + st.PendingBonusSeconds
	st.PendingBonusSeconds = 0
	st.Epoch++

	if s.cfg.HasProblemTimer() {
		st.ProblemTimerActive = true
		s.scheduleProblemTickLocked()
	}
}

func (s *Session) handleTimeoutLocked(fx *effects) {
	st := &s.state
	p := st.Problem
	delta := s.cfg.Points.Timeout

	st.Score += delta
	st.Timeouts++
	st.PendingBonusSeconds = 0

	res := Result{
		SessionID:  st.SessionID,
		Seq:        p.Seq,
		Operand1:   p.Operand1,
		Operand2:   p.Operand2,
		Outcome:    OutcomeTimeout,
		Delta:      delta,
		ScoreAfter: st.Score,
		Elapsed:    s.clk.Now().Sub(p.ShownAt),
	}
	fx.changed = true
	fx.results = append(fx.results, res)
	fx.notices = append(fx.notices, s.notice(OutcomeTimeout, timeoutMessage(p.Sum(), delta)))

	s.startNewProblemLocked(fx)
}

func (s *Session) endLocked(fx *effects, reason EndReason) {
	st := &s.state
	st.GameOver = true
	st.EndReason = reason
	st.EndedAt = s.clk.Now()
	st.ProblemTimerActive = false
	st.GameTimerActive = false
	st.Epoch++
	st.GameEpoch++
	s.stopTimersLocked()
	fx.changed = true
}

func (s *Session) scheduleProblemTickLocked() {
	epoch := s.state.Epoch
	s.problemTimer = s.clk.AfterFunc(s.cfg.tick(), func() { s.problemTick(epoch) })
}

func (s *Session) scheduleGameTickLocked() {
	epoch := s.state.GameEpoch
	s.gameTimer = s.clk.AfterFunc(s.cfg.tick(), func() { s.gameTick(epoch) })
}

// problemTick is one countdown step for the current problem.
func (s *Session) problemTick(epoch uint64) {
	s.update(func(fx *effects) {
		st := &s.state
		if s.closed || !st.ProblemTimerActive || epoch != st.Epoch || st.GameOver {
			return
		}

		st.ProblemTimeRemaining = max(st.ProblemTimeRemaining-1, 0)
		fx.changed = true
		if st.ProblemTimeRemaining == 0 {
			st.ProblemTimerActive = false
			s.handleTimeoutLocked(fx)
			return
		}
		s.scheduleProblemTickLocked()
	})
}

// gameTick is one countdown step for the whole session.
func (s *Session) gameTick(epoch uint64) {
	s.update(func(fx *effects) {
		st := &s.state
		if s.closed || !st.GameTimerActive || epoch != st.GameEpoch || st.GameOver {
			return
		}

		st.GameTimeRemaining = max(st.GameTimeRemaining-1, 0)
		fx.changed = true
		if st.GameTimeRemaining == 0 {
			s.endLocked(fx, EndTimeUp)
			fx.notices = append(fx.notices, s.notice(OutcomeGameOver, gameOverMessage(st.Score)))
			return
		}
		s.scheduleGameTickLocked()
	})
}

func (s *Session) stopTimersLocked() {
	if s.problemTimer != nil {
		s.problemTimer.Stop()
		s.problemTimer = nil
	}
	if s.gameTimer != nil {
		s.gameTimer.Stop()
		s.gameTimer = nil
	}
}

func (s *Session) notice(o Outcome, msg string) Notice {
	return Notice{Outcome: o, Message: msg, Duration: s.cfg.NoticeDuration}
}

// update runs fn under the state lock and delivers its effects afterwards.
func (s *Session) update(fn func(fx *effects)) SessionState {
	s.mu.Lock()
	var fx effects
	fn(&fx)
	if fx.changed {
		s.state.Version++
	}
	snap := s.state

	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	if s.notifier != nil {
		for _, n := range fx.notices {
			s.notifier.Notify(n)
		}
	}
	if s.observer != nil {
		for _, r := range fx.results {
			s.observer.Resolved(r)
		}
		if fx.changed {
			s.observer.Changed(snap)
		}
	}
	return snap
}

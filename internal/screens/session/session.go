package session

import (
	"context"
	"log"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/pugivik/sumas/internal/clock"
	"github.com/pugivik/sumas/internal/problemgen"
	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/screen"
	sess "github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/store"
	"github.com/pugivik/sumas/internal/ui/components"
	"github.com/pugivik/sumas/internal/ui/layout"
)

// persistTimeout bounds the synchronous end-of-session write on Close.
const persistTimeout = 2 * time.Second

// SessionScreen implements screen.Screen for a running practice session.
// The engine owns all game state; the screen renders the latest snapshot
// it received and forwards input.
type SessionScreen struct {
	cfg       sess.Config
	eventRepo store.EventRepo
	clock     clock.Clock
	generator problemgen.Generator

	engine *sess.Session
	queue  *eventQueue

	state    sess.SessionState
	input    components.TextInput
	notice   *sess.Notice
	noticeID int

	showingQuitConfirm bool
	ended              bool // game over observed
	leaving            bool // summary requested
	endPersisted       bool
	errMsg             string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New creates a SessionScreen. The session starts on Init. eventRepo may be
// nil, in which case nothing is persisted.
func New(cfg sess.Config, eventRepo store.EventRepo) *SessionScreen {
	return &SessionScreen{
		cfg:       cfg,
		eventRepo: eventRepo,
		queue:     newEventQueue(),
		input:     components.NewTextInput("Escribe tu respuesta...", 6),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	engine, err := sess.New(sess.Options{
		Config:    s.cfg,
		Generator: s.generator,
		Clock:     s.clock,
		Notifier:  s.queue,
		Observer:  s.queue,
	})
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.engine = engine
	s.state = engine.Start()

	return tea.Batch(
		s.queue.wait(),
		s.input.Init(),
		s.persistStart(s.state),
	)
}

func (s *SessionScreen) Title() string {
	return s.cfg.Mode.DisplayName()
}

func (s *SessionScreen) Status() string {
	return statusLine(s.state)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "cualquier tecla", Description: "Volver"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "S", Description: "Terminar"},
			{Key: "N", Description: "Seguir"},
		}
	case s.ended:
		return []layout.KeyHint{{Key: "cualquier tecla", Description: "Ver resumen"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Responder"},
		{Key: "Esc", Description: "Salir"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	return s.renderPlay(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventBatchMsg:
		return s, tea.Batch(s.queue.wait(), s.handleEvents(msg))

	case noticeExpiredMsg:
		if msg.ID == s.noticeID {
			s.notice = nil
		}
		return s, nil

	case summaryDueMsg:
		return s, s.showSummary()

	case persistedMsg:
		if msg.Err != nil {
			log.Printf("persist %s: %v", msg.What, msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Close ends the engine and stops the listener. A session abandoned before
// game over is still logged.
func (s *SessionScreen) Close() {
	s.queue.close()
	if s.engine == nil {
		return
	}
	st := s.engine.Close()
	if st.GameOver && !s.endPersisted && s.eventRepo != nil {
		s.endPersisted = true
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.eventRepo.AppendSessionEvent(ctx, endEvent(st)); err != nil {
			log.Printf("persist session end: %v", err)
		}
	}
}

func (s *SessionScreen) acceptingInput() bool {
	return s.engine != nil && !s.ended && !s.showingQuitConfirm && s.errMsg == ""
}

// handleEvents applies a batch of engine events. Store writes run in
// emission order so the log numbers an answer before its session's end.
func (s *SessionScreen) handleEvents(events []any) tea.Cmd {
	var ui, writes []tea.Cmd
	for _, ev := range events {
		cmd, write := s.handleEvent(ev)
		ui = append(ui, cmd)
		writes = append(writes, write)
	}
	return tea.Batch(append(ui, tea.Sequence(writes...))...)
}

// handleEvent applies one engine event. It returns the UI command and the
// store write, either of which may be nil.
func (s *SessionScreen) handleEvent(ev any) (tea.Cmd, tea.Cmd) {
	switch ev := ev.(type) {
	case stateMsg:
		st := ev.State
		if st.SessionID == s.state.SessionID && st.Version <= s.state.Version {
			return nil, nil
		}
		s.state = st
		if st.GameOver && !s.ended {
			s.ended = true
			return s.finish(), s.persistEnd(st)
		}

	case resultMsg:
		return nil, s.persistAnswer(ev.Result)

	case noticeMsg:
		n := ev.Notice
		s.notice = &n
		s.noticeID++
		id := s.noticeID
		if n.Duration <= 0 {
			return nil, nil
		}
		return tea.Tick(n.Duration, func(time.Time) tea.Msg {
			return noticeExpiredMsg{ID: id}
		}), nil
	}
	return nil, nil
}

// finish schedules the summary. A quit goes straight to it; otherwise the
// final notice stays visible for its duration first.
func (s *SessionScreen) finish() tea.Cmd {
	if s.state.EndReason == sess.EndQuit || s.cfg.NoticeDuration <= 0 {
		return s.showSummary()
	}
	return tea.Tick(s.cfg.NoticeDuration, func(time.Time) tea.Msg {
		return summaryDueMsg{}
	})
}

func (s *SessionScreen) showSummary() tea.Cmd {
	if s.leaving {
		return nil
	}
	s.leaving = true

	summary := sess.BuildSummary(s.state)
	cfg, repo := s.cfg, s.eventRepo
	replay := func() screen.Screen { return New(cfg, repo) }
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: newSummaryScreenAdapter(summary, replay)}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.engine == nil {
		return s, nil
	}

	if s.ended {
		return s, s.showSummary()
	}

	if s.showingQuitConfirm {
		switch key {
		case "s", "S", "y", "Y":
			s.showingQuitConfirm = false
			// The quit arrives as a state change through the queue.
			s.engine.Close()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		s.submitAnswer()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer sends the typed value for the problem on screen. If that
// problem already timed out the engine rejects it as late.
func (s *SessionScreen) submitAnswer() {
	p := s.state.Problem
	if p == nil {
		return
	}
	value := s.input.Value()
	s.input.Reset()
	s.engine.SubmitFor(p.Seq, value)
}

func (s *SessionScreen) persistStart(st sess.SessionState) tea.Cmd {
	repo := s.eventRepo
	if repo == nil {
		return nil
	}
	data := store.SessionEventData{
		SessionID: st.SessionID,
		Action:    store.ActionStart,
		Mode:      string(st.Mode),
	}
	return func() tea.Msg {
		return persistedMsg{What: "session start", Err: repo.AppendSessionEvent(context.Background(), data)}
	}
}

func (s *SessionScreen) persistAnswer(r sess.Result) tea.Cmd {
	repo := s.eventRepo
	if repo == nil || !r.Outcome.Scored() {
		return nil
	}
	data := store.AnswerEventData{
		SessionID:  r.SessionID,
		Mode:       string(s.cfg.Mode),
		ProblemSeq: r.Seq,
		Operand1:   r.Operand1,
		Operand2:   r.Operand2,
		Answer:     r.Answer,
		Outcome:    string(r.Outcome),
		Delta:      r.Delta,
		ScoreAfter: r.ScoreAfter,
		ElapsedMs:  r.Elapsed.Milliseconds(),
	}
	return func() tea.Msg {
		return persistedMsg{What: "answer", Err: repo.AppendAnswerEvent(context.Background(), data)}
	}
}

func (s *SessionScreen) persistEnd(st sess.SessionState) tea.Cmd {
	repo := s.eventRepo
	if repo == nil || s.endPersisted {
		return nil
	}
	s.endPersisted = true
	data := endEvent(st)
	return func() tea.Msg {
		return persistedMsg{What: "session end", Err: repo.AppendSessionEvent(context.Background(), data)}
	}
}

func endEvent(st sess.SessionState) store.SessionEventData {
	sum := sess.BuildSummary(st)
	return store.SessionEventData{
		SessionID:  st.SessionID,
		Action:     store.ActionEnd,
		Mode:       string(st.Mode),
		Score:      st.Score,
		Correct:    st.Correct,
		Incorrect:  st.Incorrect,
		Invalid:    st.Invalid,
		Timeouts:   st.Timeouts,
		Late:       st.Late,
		EndReason:  string(st.EndReason),
		DurationMs: sum.Duration.Milliseconds(),
	}
}

package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pugivik/sumas/internal/router"
	"github.com/pugivik/sumas/internal/store"
)

type fakeRepo struct {
	sessions    []store.SessionSummaryRecord
	answers     map[string][]store.AnswerEventRecord
	answerCalls int
	err         error
}

func (f *fakeRepo) AppendSessionEvent(context.Context, store.SessionEventData) error { return nil }
func (f *fakeRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error   { return nil }
func (f *fakeRepo) QuerySessionSummaries(_ context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	if opts.Limit != pageSize {
		return nil, errors.New("unexpected limit")
	}
	return f.sessions, f.err
}
func (f *fakeRepo) QueryAnswerEvents(_ context.Context, id string) ([]store.AnswerEventRecord, error) {
	f.answerCalls++
	return f.answers[id], nil
}
func (f *fakeRepo) BestScore(context.Context, string) (int, bool, error) { return 0, false, nil }
func (f *fakeRepo) Totals(context.Context) (store.Totals, error)         { return store.Totals{}, nil }
func (f *fakeRepo) Reset(context.Context) error                          { return nil }

func testRepo() *fakeRepo {
	ts := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	return &fakeRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "a", Mode: "blitz", Score: 24, Correct: 9, Incorrect: 2, Timeouts: 1, DurationSecs: 90, Timestamp: ts},
			{SessionID: "b", Mode: "classic", Score: 45, Correct: 15, DurationSecs: 75, Timestamp: ts.Add(-time.Hour)},
		},
		answers: map[string][]store.AnswerEventRecord{
			"a": {
				{AnswerEventData: store.AnswerEventData{SessionID: "a", ProblemSeq: 1, Operand1: 12, Operand2: 34, Answer: "46", Outcome: "correct", Delta: 3}},
				{AnswerEventData: store.AnswerEventData{SessionID: "a", ProblemSeq: 2, Operand1: 50, Operand2: 60, Outcome: "timeout", Delta: -1}},
			},
		},
	}
}

func loaded(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.True(t, s.loaded)
	return s
}

func TestHistoryScreen_Title(t *testing.T) {
	assert.Equal(t, "Historial", New(nil).Title())
}

func TestHistoryScreen_LoadsSessions(t *testing.T) {
	s := loaded(t, testRepo())
	require.Len(t, s.sessions, 2)

	view := s.View(100, 30)
	assert.Contains(t, view, "Relámpago")
	assert.Contains(t, view, "Clásico")
	assert.Contains(t, view, "9/12")
	assert.Contains(t, view, "1:30")
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &fakeRepo{})
	assert.Contains(t, s.View(80, 24), "Aún no hay partidas")
}

func TestHistoryScreen_NilRepo(t *testing.T) {
	s := New(nil)
	assert.Nil(t, s.Init())
	assert.Contains(t, s.View(80, 24), "Aún no hay partidas")
}

func TestHistoryScreen_LoadError(t *testing.T) {
	s := loaded(t, &fakeRepo{err: errors.New("disk gone")})
	assert.Contains(t, s.View(80, 24), "disk gone")
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, testRepo())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected, "selection must stop at the last row")
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
}

func TestHistoryScreen_ExpandLoadsAnswersOnce(t *testing.T) {
	repo := testRepo()
	s := loaded(t, repo)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Cargando...")

	s.Update(cmd())
	view := s.View(100, 30)
	assert.Contains(t, view, "12 + 34 = 46")
	assert.Contains(t, view, "sin tiempo")

	// Collapse and expand again: answers are cached.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, repo.answerCalls)
}

func TestHistoryScreen_ExpandWithoutAnswers(t *testing.T) {
	s := loaded(t, testRepo())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.True(t, strings.Contains(s.View(100, 30), "Sin respuestas registradas"))
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

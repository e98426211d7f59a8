package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRepo(t *testing.T) *eventRepo {
	t.Helper()
	repo := openTestStore(t).EventRepo().(*eventRepo)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	repo.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return repo
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpenFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sumas.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileDB.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{sessionEventsTable, answerEventsTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.drv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}

	if err := sc.reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	seq, err := sc.Next(ctx)
	if err != nil {
		t.Fatalf("next after reset: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq after reset = %d, want 1", seq)
	}
}

func finish(t *testing.T, repo EventRepo, id, mode string, score, correct, incorrect int) {
	t.Helper()
	ctx := context.Background()
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: ActionStart, Mode: mode}); err != nil {
		t.Fatalf("append start: %v", err)
	}
	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:  id,
		Action:     ActionEnd,
		Mode:       mode,
		Score:      score,
		Correct:    correct,
		Incorrect:  incorrect,
		EndReason:  "exercises",
		DurationMs: 61_500,
	})
	if err != nil {
		t.Fatalf("append end: %v", err)
	}
}

func TestQuerySessionSummaries(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	finish(t, repo, "a", "classic", 45, 15, 0)
	finish(t, repo, "b", "blitz", 12, 5, 3)
	finish(t, repo, "c", "classic", 7, 5, 8)

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d summaries, want 3 (start events excluded)", len(recs))
	}
	if recs[0].SessionID != "c" || recs[2].SessionID != "a" {
		t.Errorf("order = %s,%s,%s, want newest first", recs[0].SessionID, recs[1].SessionID, recs[2].SessionID)
	}

	a := recs[2]
	if a.Score != 45 || a.Correct != 15 || a.Resolved() != 15 {
		t.Errorf("summary a = %+v", a)
	}
	if a.DurationSecs != 61 {
		t.Errorf("duration = %d, want 61", a.DurationSecs)
	}
	if a.EndReason != "exercises" {
		t.Errorf("end reason = %q", a.EndReason)
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "c" {
		t.Errorf("limit 1 = %+v", limited)
	}

	classic, err := repo.QuerySessionSummaries(ctx, QueryOpts{Mode: "classic"})
	if err != nil {
		t.Fatalf("query mode: %v", err)
	}
	if len(classic) != 2 {
		t.Errorf("classic summaries = %d, want 2", len(classic))
	}

	older, err := repo.QuerySessionSummaries(ctx, QueryOpts{Before: recs[0].Sequence})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 || older[0].SessionID != "b" {
		t.Errorf("before = %+v", older)
	}
}

func TestQuerySessionSummaries_Empty(t *testing.T) {
	repo := testRepo(t)
	recs, err := repo.QuerySessionSummaries(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d, want 0", len(recs))
	}
}

func TestAnswerEvents(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	events := []AnswerEventData{
		{SessionID: "s1", Mode: "timed", ProblemSeq: 1, Operand1: 12, Operand2: 34, Answer: "46", Outcome: "correct", Delta: 3, ScoreAfter: 3, ElapsedMs: 2100},
		{SessionID: "s2", Mode: "classic", ProblemSeq: 1, Operand1: 10, Operand2: 10, Answer: "20", Outcome: "correct", Delta: 3, ScoreAfter: 3},
		{SessionID: "s1", Mode: "timed", ProblemSeq: 2, Operand1: 50, Operand2: 60, Outcome: "timeout", Delta: -1, ScoreAfter: 2, ElapsedMs: 20000},
	}
	for _, e := range events {
		if err := repo.AppendAnswerEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryAnswerEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d answers, want 2", len(got))
	}
	if got[0].ProblemSeq != 1 || got[1].ProblemSeq != 2 {
		t.Errorf("answers not in play order: %+v", got)
	}
	if got[0].AnswerEventData != events[0] {
		t.Errorf("round trip = %+v, want %+v", got[0].AnswerEventData, events[0])
	}
	if got[1].Sequence <= got[0].Sequence {
		t.Errorf("sequence not increasing: %d then %d", got[0].Sequence, got[1].Sequence)
	}
}

func TestBestScore(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.BestScore(ctx, "classic"); err != nil || ok {
		t.Fatalf("empty best = ok %v err %v, want no score", ok, err)
	}

	finish(t, repo, "a", "classic", 12, 5, 3)
	finish(t, repo, "b", "classic", 30, 10, 0)
	finish(t, repo, "c", "blitz", 99, 33, 0)

	best, ok, err := repo.BestScore(ctx, "classic")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if !ok || best != 30 {
		t.Errorf("best = %d (ok %v), want 30", best, ok)
	}
}

func TestBestScore_Negative(t *testing.T) {
	repo := testRepo(t)
	finish(t, repo, "a", "timed", -4, 0, 4)

	best, ok, err := repo.BestScore(context.Background(), "timed")
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if !ok || best != -4 {
		t.Errorf("best = %d (ok %v), want -4", best, ok)
	}
}

func TestTotals(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	empty, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("empty totals = %+v", empty)
	}

	finish(t, repo, "a", "classic", 45, 15, 0)
	finish(t, repo, "b", "classic", 7, 5, 8)

	got, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got.Sessions != 2 || got.Answers != 28 || got.Correct != 20 {
		t.Errorf("totals = %+v", got)
	}
	if got.Played != 123*time.Second {
		t.Errorf("played = %v, want 2m3s", got.Played)
	}
	if acc := got.Accuracy(); acc < 0.71 || acc > 0.72 {
		t.Errorf("accuracy = %v", acc)
	}
}

func TestReset(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	finish(t, repo, "a", "classic", 45, 15, 0)
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "a", Outcome: "correct"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	answers, err := repo.QueryAnswerEvents(ctx, "a")
	if err != nil {
		t.Fatalf("query answers: %v", err)
	}
	if len(recs) != 0 || len(answers) != 0 {
		t.Errorf("after reset: %d sessions, %d answers", len(recs), len(answers))
	}

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "b", Action: ActionStart, Mode: "classic"}); err != nil {
		t.Fatalf("append after reset: %v", err)
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionSummaryColumns = []string{
	"session_id", "mode", "score", "correct", "incorrect", "invalid",
	"timeouts", "late", "end_reason", "duration_ms", "sequence", "timestamp",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "action", "mode",
			"score", "correct", "incorrect", "invalid", "timeouts", "late",
			"end_reason", "duration_ms").
		Values(seqNum, r.now().UnixMilli(), data.SessionID, data.Action, data.Mode,
			data.Score, data.Correct, data.Incorrect, data.Invalid, data.Timeouts, data.Late,
			data.EndReason, data.DurationMs).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := r.builder()
	sel := b.Select(sessionSummaryColumns...).
		From(b.Table(sessionEventsTable)).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	query, args := filter(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec        SessionSummaryRecord
			durationMs int64
			ts         int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Mode, &rec.Score, &rec.Correct,
			&rec.Incorrect, &rec.Invalid, &rec.Timeouts, &rec.Late, &rec.EndReason,
			&durationMs, &rec.Sequence, &ts); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.DurationSecs = int(durationMs / 1000)
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) BestScore(ctx context.Context, mode string) (int, bool, error) {
	b := r.builder()
	query, args := b.Select(entsql.Max("score")).
		From(b.Table(sessionEventsTable)).
		Where(entsql.And(
			entsql.EQ("action", ActionEnd),
			entsql.EQ("mode", mode),
		)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, false, fmt.Errorf("query best score: %w", err)
	}
	defer rows.Close()

	var best sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&best); err != nil {
			return 0, false, fmt.Errorf("scan best score: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate best score: %w", err)
	}
	return int(best.Int64), best.Valid, nil
}

func (r *eventRepo) Totals(ctx context.Context) (Totals, error) {
	b := r.builder()
	query, args := b.Select(
		entsql.Count("*"),
		entsql.Sum("correct"),
		entsql.Sum("incorrect"),
		entsql.Sum("invalid"),
		entsql.Sum("timeouts"),
		entsql.Sum("duration_ms"),
	).
		From(b.Table(sessionEventsTable)).
		Where(entsql.EQ("action", ActionEnd)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var (
		t                                    Totals
		correct, incorrect, invalid, timeout sql.NullInt64
		durationMs                           sql.NullInt64
	)
	if rows.Next() {
		if err := rows.Scan(&t.Sessions, &correct, &incorrect, &invalid, &timeout, &durationMs); err != nil {
			return Totals{}, fmt.Errorf("scan totals: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return Totals{}, fmt.Errorf("iterate totals: %w", err)
	}

	t.Correct = int(correct.Int64)
	t.Timeouts = int(timeout.Int64)
	t.Answers = int(correct.Int64 + incorrect.Int64 + invalid.Int64 + timeout.Int64)
	t.Played = time.Duration(durationMs.Int64) * time.Millisecond
	return t, nil
}

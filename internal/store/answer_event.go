package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "mode", "problem_seq",
			"operand1", "operand2", "answer", "outcome", "delta", "score_after",
			"elapsed_ms").
		Values(seqNum, r.now().UnixMilli(), data.SessionID, data.Mode, data.ProblemSeq,
			data.Operand1, data.Operand2, data.Answer, data.Outcome, data.Delta, data.ScoreAfter,
			data.ElapsedMs).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	b := r.builder()
	query, args := b.Select("session_id", "mode", "problem_seq", "operand1", "operand2",
		"answer", "outcome", "delta", "score_after", "elapsed_ms", "sequence", "timestamp").
		From(b.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var (
			rec AnswerEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Mode, &rec.ProblemSeq, &rec.Operand1,
			&rec.Operand2, &rec.Answer, &rec.Outcome, &rec.Delta, &rec.ScoreAfter,
			&rec.ElapsedMs, &rec.Sequence, &ts); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return records, nil
}

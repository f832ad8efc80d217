package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo on game_sessions and session_answers.
type sessionRepo struct {
	drv *entsql.Driver
}

func (r *sessionRepo) Create(ctx context.Context, rec SessionRecord) error {
	query, args := builder().Insert(tableSessions).
		Columns("id", "user_id", "game_id", "user_type", "score", "completed", "started_at").
		Values(rec.ID, rec.UserID, rec.GameID, rec.UserType, rec.Score, boolInt(rec.Completed), rec.StartedAt.UnixMilli()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) AppendAnswer(ctx context.Context, sessionID string, answer AnswerRecord) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := requireOpen(ctx, tx, sessionID); err != nil {
		tx.Rollback()
		return err
	}

	seq, err := nextAnswerSeq(ctx, tx, sessionID)
	if err != nil {
		tx.Rollback()
		return err
	}

	query, args := builder().Insert(tableAnswers).
		Columns("session_id", "seq", "question_id", "user_answer", "correct", "response_time_ms").
		Values(sessionID, seq, answer.QuestionID, answer.UserAnswer, boolInt(answer.Correct), answer.ResponseTimeMs).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert answer: %w", err)
	}

	if answer.Correct {
		query, args := builder().Update(tableSessions).
			Add("score", 1).
			Where(entsql.EQ("id", sessionID)).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("bump score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *sessionRepo) Complete(ctx context.Context, sessionID string, at time.Time) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := requireOpen(ctx, tx, sessionID); err != nil {
		tx.Rollback()
		return err
	}

	query, args := builder().Update(tableSessions).
		Set("completed", 1).
		Set("completed_at", at.UnixMilli()).
		Where(entsql.EQ("id", sessionID)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("complete session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, sessionID string) (*SessionRecord, error) {
	recs, err := r.selectSessions(ctx, entsql.EQ("id", sessionID), 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	rec := recs[0]

	b := builder()
	query, args := b.Select("question_id", "user_answer", "correct", "response_time_ms").
		From(b.Table(tableAnswers)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("seq").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	rec.Answers = []AnswerRecord{}
	for rows.Next() {
		var (
			a       AnswerRecord
			correct int
		)
		if err := rows.Scan(&a.QuestionID, &a.UserAnswer, &correct, &a.ResponseTimeMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.Correct = correct != 0
		rec.Answers = append(rec.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return &rec, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]SessionRecord, error) {
	return r.selectSessions(ctx, entsql.EQ("user_id", userID), limit)
}

func (r *sessionRepo) selectSessions(ctx context.Context, where *entsql.Predicate, limit int) ([]SessionRecord, error) {
	b := builder()
	sel := b.Select("id", "user_id", "game_id", "user_type", "score", "completed", "started_at", "completed_at").
		From(b.Table(tableSessions)).
		Where(where).
		OrderBy(entsql.Desc("started_at"), "id")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec         SessionRecord
			completed   int
			startedAt   int64
			completedAt sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.GameID, &rec.UserType, &rec.Score, &completed, &startedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Completed = completed != 0
		rec.StartedAt = time.UnixMilli(startedAt).UTC()
		if completedAt.Valid {
			t := time.UnixMilli(completedAt.Int64).UTC()
			rec.CompletedAt = &t
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// requireOpen returns ErrSessionNotFound or ErrSessionCompleted unless the
// session exists and is still accepting answers.
func requireOpen(ctx context.Context, q dialect.ExecQuerier, sessionID string) error {
	b := builder()
	query, args := b.Select("completed").
		From(b.Table(tableSessions)).
		Where(entsql.EQ("id", sessionID)).
		Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("query session: %w", err)
		}
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	var completed int
	if err := rows.Scan(&completed); err != nil {
		return fmt.Errorf("scan session: %w", err)
	}
	if completed != 0 {
		return fmt.Errorf("%w: %s", ErrSessionCompleted, sessionID)
	}
	return nil
}

func nextAnswerSeq(ctx context.Context, q dialect.ExecQuerier, sessionID string) (int, error) {
	b := builder()
	query, args := b.Select("COALESCE(MAX(seq), 0)").
		From(b.Table(tableAnswers)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query answer seq: %w", err)
	}
	defer rows.Close()

	var seq int
	if rows.Next() {
		if err := rows.Scan(&seq); err != nil {
			return 0, fmt.Errorf("scan answer seq: %w", err)
		}
	}
	return seq + 1, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

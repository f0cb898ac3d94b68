package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aidosq/sozdyq/internal/cycle"
)

// EventLog records practice sessions and answers locally, standing in
// for the backend when Sozdyq runs offline.
type EventLog struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ cycle.BatchSessionGateway = (*EventLog)(nil)

// StartPracticeSession opens a session row and returns its ID.
func (el *EventLog) StartPracticeSession(ctx context.Context, in cycle.StartSessionInput) (string, error) {
	seq, err := el.seq.Next(ctx)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = el.db.ExecContext(ctx,
		`INSERT INTO practice_sessions (id, sequence, started_at, word_count, language_code)
		 VALUES (?, ?, ?, ?, ?)`,
		id, seq, time.Now().UTC(), in.WordCount, in.LanguageCode)
	if err != nil {
		return "", fmt.Errorf("insert practice session: %w", err)
	}
	return id, nil
}

// SubmitPracticeAnswer appends an answer event and bumps the word's
// exposure counters.
func (el *EventLog) SubmitPracticeAnswer(ctx context.Context, sessionID string, a cycle.PracticeAnswer) error {
	seq, err := el.seq.Next(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = el.db.ExecContext(ctx,
		`INSERT INTO answer_events (sequence, session_id, word_id, was_correct, user_answer, correct_answer, response_time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, sessionID, a.WordID, boolToInt(a.WasCorrect), a.UserAnswer, a.CorrectAnswer, a.ResponseTimeMs, now)
	if err != nil {
		return fmt.Errorf("insert answer event: %w", err)
	}

	return recordPractice(ctx, el.db, a.WordID, now)
}

// FinishPracticeSession marks the session row finished.
func (el *EventLog) FinishPracticeSession(ctx context.Context, sessionID string, durationSeconds int) error {
	res, err := el.db.ExecContext(ctx,
		`UPDATE practice_sessions SET finished_at = ?, duration_seconds = ? WHERE id = ?`,
		time.Now().UTC(), durationSeconds, sessionID)
	if err != nil {
		return fmt.Errorf("finish practice session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish practice session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("practice session %s not found", sessionID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

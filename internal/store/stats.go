package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aidosq/sozdyq/internal/vocab"
)

// Stats summarizes local learning history for the stats command.
type Stats struct {
	WordsByStatus  map[vocab.Status]int
	SessionCount   int
	AnswerCount    int
	CorrectCount   int
	TotalPractice  time.Duration
	LastPracticeAt *time.Time
}

// Accuracy returns the lifetime answer accuracy as a percentage.
func (s Stats) Accuracy() float64 {
	if s.AnswerCount == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.AnswerCount) * 100
}

// Stats computes aggregate counts over the word catalog and event log.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{WordsByStatus: make(map[vocab.Status]int)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM words WHERE status != '' GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count words by status: %w", err)
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		st.WordsByStatus[vocab.Status(status)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var durationSum sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(duration_seconds), 0) FROM practice_sessions WHERE finished_at IS NOT NULL`,
	).Scan(&st.SessionCount, &durationSum)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	st.TotalPractice = time.Duration(durationSum.Int64) * time.Second

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(was_correct), 0) FROM answer_events`,
	).Scan(&st.AnswerCount, &st.CorrectCount)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	// Select the column itself rather than MAX(): the driver maps
	// declared TIMESTAMP columns to time.Time, but an aggregate result
	// comes back as a bare string.
	var last time.Time
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM answer_events ORDER BY created_at DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("last practice time: %w", err)
	default:
		st.LastPracticeAt = &last
	}

	return st, nil
}

// ResetProgress clears learning history: every word returns to the
// catalog and all session and answer records are deleted. The word
// catalog itself is kept.
func (s *Store) ResetProgress(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`UPDATE words SET status = '', times_seen = 0, last_practiced_at = NULL`,
		`DELETE FROM answer_events`,
		`DELETE FROM practice_sessions`,
		`UPDATE global_sequence SET next_val = 1 WHERE id = 1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	return tx.Commit()
}

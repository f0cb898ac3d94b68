package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aidosq/sozdyq/internal/vocab"
)

// catalogOnly marks a word that exists in the seeded catalog but has
// not been added to the learner's list yet. AddRandomWords draws from
// these rows.
const catalogOnly = ""

// WordStore is the local vocab.WordSource backed by the SQLite word
// catalog. Used when no backend URL is configured.
type WordStore struct {
	db *sql.DB
}

var _ vocab.WordSource = (*WordStore)(nil)

const wordColumns = `id, headword, transliteration, translation,
	difficulty_level, category_name, times_seen, last_practiced_at, status`

func scanWord(row interface{ Scan(...any) error }) (vocab.Word, error) {
	var w vocab.Word
	var last sql.NullTime
	var status string
	err := row.Scan(&w.ID, &w.Headword, &w.Transliteration, &w.Translation,
		&w.DifficultyLevel, &w.CategoryName, &w.TimesSeen, &last, &status)
	if err != nil {
		return vocab.Word{}, err
	}
	if last.Valid {
		t := last.Time
		w.LastPracticedAt = &t
	}
	w.Status = vocab.Status(status)
	return w, nil
}

// FetchLearningPool returns eligible words: review first (they are
// due), then the least recently practiced.
func (ws *WordStore) FetchLearningPool(ctx context.Context, q vocab.PoolQuery) ([]vocab.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words
		WHERE status IN (?, ?, ?)`
	args := []any{
		string(vocab.StatusWantToLearn),
		string(vocab.StatusLearning),
		string(vocab.StatusReview),
	}
	if q.DifficultyID > 0 {
		query += ` AND difficulty_level = ?`
		args = append(args, q.DifficultyID)
	}
	query += ` ORDER BY status = ? DESC, last_practiced_at IS NULL DESC, last_practiced_at ASC, id ASC`
	args = append(args, string(vocab.StatusReview))
	if q.DailyGoal > 0 {
		query += ` LIMIT ?`
		args = append(args, q.DailyGoal)
	}

	rows, err := ws.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query learning pool: %w", err)
	}
	defer rows.Close()

	var words []vocab.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// SetWordStatus updates a word's lifecycle status. Idempotent.
func (ws *WordStore) SetWordStatus(ctx context.Context, wordID int64, status vocab.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid word status %q", status)
	}
	res, err := ws.db.ExecContext(ctx,
		`UPDATE words SET status = ? WHERE id = ?`, string(status), wordID)
	if err != nil {
		return fmt.Errorf("set word %d status: %w", wordID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set word %d status: %w", wordID, err)
	}
	if n == 0 {
		return fmt.Errorf("word %d not found", wordID)
	}
	return nil
}

// AddRandomWords moves up to count catalog-only words into the
// learner's want_to_learn list and returns them.
func (ws *WordStore) AddRandomWords(ctx context.Context, count int, categoryID int64, difficultyID int) (*vocab.AddedWords, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE status = ?`
	args := []any{catalogOnly}
	if difficultyID > 0 {
		query += ` AND difficulty_level = ?`
		args = append(args, difficultyID)
	}
	query += ` ORDER BY RANDOM() LIMIT ?`
	args = append(args, count)

	rows, err := ws.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pick random words: %w", err)
	}
	var picked []vocab.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan word: %w", err)
		}
		picked = append(picked, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	added := &vocab.AddedWords{}
	for _, w := range picked {
		if err := ws.SetWordStatus(ctx, w.ID, vocab.StatusWantToLearn); err != nil {
			return nil, err
		}
		w.Status = vocab.StatusWantToLearn
		added.Words = append(added.Words, w)
		added.WordsAdded++
	}
	return added, nil
}

// Find returns the catalog entry for a headword.
func (ws *WordStore) Find(ctx context.Context, headword string) (vocab.Word, error) {
	row := ws.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE headword = ?`, headword)
	w, err := scanWord(row)
	if err == sql.ErrNoRows {
		return vocab.Word{}, fmt.Errorf("word %q not in catalog", headword)
	}
	if err != nil {
		return vocab.Word{}, fmt.Errorf("find word: %w", err)
	}
	return w, nil
}

// ListByStatus returns all words with the given status, for the words
// command. Passing an empty status lists unseeded catalog words.
func (ws *WordStore) ListByStatus(ctx context.Context, status vocab.Status) ([]vocab.Word, error) {
	rows, err := ws.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE status = ? ORDER BY headword`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("list words by status: %w", err)
	}
	defer rows.Close()

	var words []vocab.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// recordPractice bumps a word's exposure counters after an answer.
func recordPractice(ctx context.Context, db *sql.DB, wordID int64, now time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE words SET times_seen = times_seen + 1, last_practiced_at = ? WHERE id = ?`,
		now.UTC(), wordID)
	if err != nil {
		return fmt.Errorf("record practice for word %d: %w", wordID, err)
	}
	return nil
}

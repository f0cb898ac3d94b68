// Package store is the local SQLite layer: the seeded word catalog
// (an offline vocab.WordSource) and the practice event log (an offline
// cycle.BatchSessionGateway plus the data behind the stats command).
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to the word
// catalog and event log.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It
// applies recommended pragmas, migrates the schema, and seeds the word
// catalog on first run.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := seedWords(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed words: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Words returns the local WordStore backed by this store.
func (s *Store) Words() *WordStore {
	return &WordStore{db: s.db}
}

// Events returns the local EventLog backed by this store.
func (s *Store) Events() (*EventLog, error) {
	seq, err := newSequenceCounter(s.db)
	if err != nil {
		return nil, err
	}
	return &EventLog{db: s.db, seq: seq}, nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			headword TEXT NOT NULL UNIQUE,
			transliteration TEXT NOT NULL DEFAULT '',
			translation TEXT NOT NULL,
			difficulty_level INTEGER NOT NULL DEFAULT 1,
			category_name TEXT NOT NULL DEFAULT '',
			times_seen INTEGER NOT NULL DEFAULT 0,
			last_practiced_at TIMESTAMP,
			status TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_status ON words(status)`,
		`CREATE TABLE IF NOT EXISTS practice_sessions (
			id TEXT PRIMARY KEY,
			sequence INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			word_count INTEGER NOT NULL,
			language_code TEXT NOT NULL DEFAULT 'kk',
			duration_seconds INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			word_id INTEGER NOT NULL,
			was_correct INTEGER NOT NULL,
			user_answer TEXT NOT NULL DEFAULT '',
			correct_answer TEXT NOT NULL DEFAULT '',
			response_time_ms INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_word ON answer_events(word_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:30], err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SOZDYQ_DB environment variable
// 2. $XDG_DATA_HOME/sozdyq/sozdyq.db
// 3. ~/.local/share/sozdyq/sozdyq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SOZDYQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "sozdyq", "sozdyq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

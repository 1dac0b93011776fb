// Package store handles SQLite persistence for the library, reading
// progress, and session history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps SQLite access for all durable state.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at path, creating
// the file and parent directory as needed. It applies recommended pragmas
// and runs migrations.
func Open(path string) (*Store, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for optimal single-user performance.
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

// migrate creates the schema. Statements are idempotent so migration runs
// on every open.
func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL UNIQUE,
			word_count INTEGER NOT NULL,
			added_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS book_words (
			book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (book_id, idx)
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			book_id TEXT PRIMARY KEY REFERENCES books(id) ON DELETE CASCADE,
			word_index INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS read_sessions (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			words_read INTEGER NOT NULL,
			avg_wpm INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_read_sessions_started_at ON read_sessions(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Reset deletes all library, progress, and history data. The schema stays
// in place.
func (s *Store) Reset(ctx context.Context) error {
	// Children first so the statements work with foreign keys off too.
	stmts := []string{
		"DELETE FROM read_sessions",
		"DELETE FROM progress",
		"DELETE FROM book_words",
		"DELETE FROM books",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SKIMR_DB environment variable
// 2. $XDG_DATA_HOME/skimr/skimr.db
// 3. ~/.local/share/skimr/skimr.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SKIMR_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "skimr", "skimr.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

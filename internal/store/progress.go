package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SaveProgress records the current word index for a book, replacing any
// previous position.
func (s *Store) SaveProgress(ctx context.Context, bookID string, wordIndex int) error {
	if wordIndex < 0 {
		wordIndex = 0
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (book_id, word_index, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(book_id) DO UPDATE SET
		   word_index = excluded.word_index,
		   updated_at = excluded.updated_at`,
		bookID, wordIndex, time.Now().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Progress returns the saved word index for a book, or zero when the book
// has never been read.
func (s *Store) Progress(ctx context.Context, bookID string) (int, error) {
	var idx int
	err := s.db.QueryRowContext(ctx,
		"SELECT word_index FROM progress WHERE book_id = ?", bookID,
	).Scan(&idx)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query progress: %w", err)
	}
	return idx, nil
}

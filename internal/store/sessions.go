package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is one completed reading session as persisted.
type SessionRecord struct {
	ID         string
	BookID     string
	BookTitle  string
	StartedAt  time.Time
	EndedAt    time.Time
	WordsRead  int
	AvgWPM     int
	DurationMs int64
}

// InsertSession appends a completed session to the history. The record's
// ID is assigned here.
func (s *Store) InsertSession(ctx context.Context, rec *SessionRecord) error {
	rec.ID = uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO read_sessions
		   (id, book_id, started_at, ended_at, words_read, avg_wpm, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.BookID,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.WordsRead, rec.AvgWPM, rec.DurationMs)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecentSessions returns up to limit sessions, newest first, with book
// titles resolved. A limit of zero or less means no limit.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded.
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT rs.id, rs.book_id, b.title, rs.started_at, rs.ended_at,
		        rs.words_read, rs.avg_wpm, rs.duration_ms
		 FROM read_sessions rs
		 JOIN books b ON b.id = rs.book_id
		 ORDER BY rs.started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var recs []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &rec.BookID, &rec.BookTitle,
			&startedAt, &endedAt, &rec.WordsRead, &rec.AvgWPM, &rec.DurationMs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		rec.EndedAt, _ = time.Parse(time.RFC3339Nano, endedAt)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

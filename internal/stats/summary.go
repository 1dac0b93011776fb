// Package stats computes reading statistics from finished sessions.
package stats

import (
	"math"
	"time"

	"github.com/abhisek/skimr/internal/store"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	BookID    string
	BookTitle string
	StartedAt time.Time
	EndedAt   time.Time
	// WordsRead counts words presented while playing, rewinds included.
	WordsRead int
	// ActiveTime is time spent playing, pauses excluded.
	ActiveTime time.Duration
	// EndIndex is the word index after the closing rewind.
	EndIndex  int
	WordCount int
	// Finished reports whether playback ran off the end of the book.
	Finished bool
}

// AvgWPM returns the average reading speed over active time.
func (s *SessionSummary) AvgWPM() int {
	if s.ActiveTime <= 0 || s.WordsRead <= 0 {
		return 0
	}
	return int(math.Round(float64(s.WordsRead) / s.ActiveTime.Minutes()))
}

// Record converts the summary into its persisted form.
func (s *SessionSummary) Record() *store.SessionRecord {
	return &store.SessionRecord{
		BookID:     s.BookID,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		WordsRead:  s.WordsRead,
		AvgWPM:     s.AvgWPM(),
		DurationMs: s.ActiveTime.Milliseconds(),
	}
}

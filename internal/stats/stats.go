package stats

import (
	"math"
	"time"

	"github.com/abhisek/skimr/internal/store"
)

const (
	// DefaultComfortWindow is the rolling window size for the comfort
	// speed estimate.
	DefaultComfortWindow = 10

	// MinComfortWords is the minimum session length that counts toward
	// the comfort speed. Shorter sessions are mostly ramp-up and would
	// drag the estimate down.
	MinComfortWords = 30
)

// Totals aggregates a set of sessions into lifetime reading stats.
type Totals struct {
	Sessions   int
	WordsRead  int
	ActiveTime time.Duration
	// AvgWPM is the overall rate: total words over total active time.
	AvgWPM int
}

// Aggregate computes Totals over the given sessions.
func Aggregate(recs []store.SessionRecord) Totals {
	var t Totals
	var totalMs int64
	for _, r := range recs {
		t.Sessions++
		t.WordsRead += r.WordsRead
		totalMs += r.DurationMs
	}
	t.ActiveTime = time.Duration(totalMs) * time.Millisecond
	if totalMs > 0 && t.WordsRead > 0 {
		t.AvgWPM = int(math.Round(float64(t.WordsRead) / t.ActiveTime.Minutes()))
	}
	return t
}

// ComfortSpeed estimates the reader's sustainable speed: the mean average
// WPM of the most recent qualifying sessions, over a rolling window.
// Sessions are expected newest first. Returns 0 when no session qualifies.
func ComfortSpeed(recs []store.SessionRecord) int {
	return ComfortSpeedWindow(recs, DefaultComfortWindow)
}

// ComfortSpeedWindow is ComfortSpeed with an explicit window size.
func ComfortSpeedWindow(recs []store.SessionRecord, window int) int {
	if window <= 0 {
		window = DefaultComfortWindow
	}
	sum, n := 0, 0
	for _, r := range recs {
		if n >= window {
			break
		}
		if r.WordsRead < MinComfortWords {
			continue
		}
		sum += r.AvgWPM
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

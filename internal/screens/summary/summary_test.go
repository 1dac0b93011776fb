package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/stats"
)

// partialSession reads 1800 words in 6 active minutes of a 10 minute
// session, stopping partway through the book.
func partialSession() *stats.SessionSummary {
	return &stats.SessionSummary{
		BookID:     "book-1",
		BookTitle:  "The Time Machine",
		StartedAt:  time.Now().Add(-10 * time.Minute),
		EndedAt:    time.Now(),
		WordsRead:  1800,
		ActiveTime: 6 * time.Minute,
		EndIndex:   1797,
		WordCount:  32000,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(partialSession())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestViewReportsSessionStats(t *testing.T) {
	view := New(partialSession()).View(80, 24)

	for _, want := range []string{
		"Session complete",
		"The Time Machine",
		"Words: 1800",
		"Time: 6:00",
		"Speed: 300 wpm",
		"resumes at word 1798 of 32000",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewFinishedBook(t *testing.T) {
	sum := partialSession()
	sum.Finished = true
	sum.EndIndex = sum.WordCount - 1

	view := New(sum).View(80, 24)

	if !strings.Contains(view, "Book finished!") {
		t.Error("view missing the finished headline")
	}
	if !strings.Contains(view, "32000 words, all read") {
		t.Error("view missing the all-read position line")
	}
	if strings.Contains(view, "resumes at") {
		t.Error("finished book must not advertise a resume position")
	}
}

func TestAnyCloseKeyPops(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	} {
		s := New(partialSession())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("key %q: expected a pop command", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("key %q: expected PopScreenMsg", key.String())
		}
	}
}

func TestKeyHints(t *testing.T) {
	s := New(partialSession())
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

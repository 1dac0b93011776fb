package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "skimr.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func seedSessions(t *testing.T, st *store.Store, n int) {
	t.Helper()
	ctx := context.Background()

	b := &book.Book{
		ID:      uuid.New().String(),
		Title:   "Seeded Book",
		Path:    "/tmp/seeded.txt",
		AddedAt: time.Now().UTC(),
	}
	if _, err := st.AddBook(ctx, b, book.Words{"a", "b", "c"}); err != nil {
		t.Fatalf("add book: %v", err)
	}

	for i := 0; i < n; i++ {
		rec := &store.SessionRecord{
			BookID:     b.ID,
			StartedAt:  time.Now().Add(time.Duration(-i) * time.Hour),
			EndedAt:    time.Now().Add(time.Duration(-i)*time.Hour + 5*time.Minute),
			WordsRead:  500,
			AvgWPM:     250,
			DurationMs: 2 * 60 * 1000,
		}
		if err := st.InsertSession(ctx, rec); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}
}

func loadedHistory(t *testing.T, st *store.Store) *HistoryScreen {
	t.Helper()
	s := New(st)
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected history to be loaded")
	}
	return s
}

func TestHistoryScreen_Title(t *testing.T) {
	s := New(openTestStore(t))
	if s.Title() != "History" {
		t.Errorf("Title = %q, want %q", s.Title(), "History")
	}
}

func TestLoadAggregatesTotals(t *testing.T) {
	st := openTestStore(t)
	seedSessions(t, st, 3)

	s := loadedHistory(t, st)

	if len(s.sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(s.sessions))
	}
	if s.totals.WordsRead != 1500 {
		t.Errorf("total words = %d, want 1500", s.totals.WordsRead)
	}
	// 1500 words over 6 active minutes.
	if s.totals.AvgWPM != 250 {
		t.Errorf("AvgWPM = %d, want 250", s.totals.AvgWPM)
	}
	if s.comfort != 250 {
		t.Errorf("comfort speed = %d, want 250", s.comfort)
	}
}

func TestNavigationBounds(t *testing.T) {
	st := openTestStore(t)
	seedSessions(t, st, 2)

	s := loadedHistory(t, st)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected after up at top = %d, want 0", s.selected)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected after down past end = %d, want 1", s.selected)
	}
}

func TestEscPops(t *testing.T) {
	st := openTestStore(t)
	s := loadedHistory(t, st)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("cmd returned %T, want PopScreenMsg", cmd())
	}
}

func TestView_Empty(t *testing.T) {
	st := openTestStore(t)
	s := loadedHistory(t, st)

	if view := s.View(80, 24); !strings.Contains(view, "No sessions yet") {
		t.Error("expected the empty-history notice")
	}
}

func TestView_WithSessions(t *testing.T) {
	st := openTestStore(t)
	seedSessions(t, st, 5)
	s := loadedHistory(t, st)

	view := s.View(80, 24)
	for _, want := range []string{"5 sessions", "2500 words", "Seeded Book", "250 wpm"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Minute, "1h 30m"},
		{5 * time.Minute, "5m"},
		{42 * time.Second, "42s"},
	}
	for _, tt := range tests {
		if got := formatTotal(tt.d); got != tt.want {
			t.Errorf("formatTotal(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

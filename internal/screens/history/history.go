package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/screen"
	"github.com/abhisek/skimr/internal/stats"
	"github.com/abhisek/skimr/internal/store"
	"github.com/abhisek/skimr/internal/ui/layout"
	"github.com/abhisek/skimr/internal/ui/theme"
)

const (
	sessionLimit = 50
	storeTimeout = 5 * time.Second
)

var (
	errorStyle    = lipgloss.NewStyle().Foreground(theme.Error)
	loadingStyle  = lipgloss.NewStyle().Foreground(theme.TextDim)
	emptyStyle    = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	totalsStyle   = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	speedStyle    = lipgloss.NewStyle().Foreground(theme.TextDim)
	rowStyle      = lipgloss.NewStyle().Foreground(theme.Text)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
)

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Totals   stats.Totals
	Comfort  int
	Err      error
}

// HistoryScreen displays past reading sessions and lifetime totals.
type HistoryScreen struct {
	store    *store.Store
	sessions []store.SessionRecord
	totals   stats.Totals
	comfort  int
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{store: st}
}

func (s *HistoryScreen) Init() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		sessions, err := st.RecentSessions(ctx, sessionLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{
			Sessions: sessions,
			Totals:   stats.Aggregate(sessions),
			Comfort:  stats.ComfortSpeed(sessions),
		}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.totals = msg.Totals
			s.comfort = msg.Comfort
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return banner(width, errorStyle, "Error: "+s.errMsg)
	case !s.loaded:
		return banner(width, loadingStyle, "Loading history...")
	case len(s.sessions) == 0:
		return banner(width, emptyStyle, "No sessions yet. Open a book and start reading!")
	}

	var b strings.Builder
	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	center(totalsStyle.Render(fmt.Sprintf("%d sessions  ·  %d words  ·  %s active",
		s.totals.Sessions, s.totals.WordsRead, formatTotal(s.totals.ActiveTime))))

	speedLine := fmt.Sprintf("average %d wpm", s.totals.AvgWPM)
	if s.comfort > 0 {
		speedLine += fmt.Sprintf("  ·  comfort speed %d wpm", s.comfort)
	}
	center(speedStyle.Render(speedLine))
	b.WriteString("\n")

	start, end := s.window(height)
	for i := start; i < end; i++ {
		sess := s.sessions[i]

		style, prefix := rowStyle, "  "
		if i == s.selected {
			style, prefix = selectedStyle, "> "
		}

		center(style.Render(fmt.Sprintf("%s%s  %-28s  %6d words  %s  %d wpm",
			prefix,
			sess.StartedAt.Format("Jan 02 15:04"),
			runewidth.Truncate(sess.BookTitle, 28, "..."),
			sess.WordsRead,
			formatSession(time.Duration(sess.DurationMs)*time.Millisecond),
			sess.AvgWPM)))
	}

	return b.String()
}

// window picks the row range to show, keeping the selection inside the
// content area however long the history grows.
func (s *HistoryScreen) window(height int) (int, int) {
	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := start + visible
	if end > len(s.sessions) {
		end = len(s.sessions)
	}
	return start, end
}

// banner fills the top of the content region with one centered message.
func banner(width int, style lipgloss.Style, msg string) string {
	return style.Width(width).Align(lipgloss.Center).Render("\n\n" + msg)
}

// formatTotal renders a lifetime duration, coarse units only.
func formatTotal(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// formatSession renders a single session duration as m:ss.
func formatSession(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

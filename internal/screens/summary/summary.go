package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/screen"
	"github.com/abhisek/skimr/internal/stats"
	"github.com/abhisek/skimr/internal/ui/components"
	"github.com/abhisek/skimr/internal/ui/layout"
	"github.com/abhisek/skimr/internal/ui/theme"
)

var (
	finishedStyle = lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Align(lipgloss.Center)
	textStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	dimStyle     = lipgloss.NewStyle().Foreground(theme.TextDim)
	dividerStyle = lipgloss.NewStyle().Foreground(theme.Border)
)

// SummaryScreen displays the results of a reading session.
type SummaryScreen struct {
	summary *stats.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *stats.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Library"},
		{Key: "Esc", Description: "Library"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			// The reader replaced itself with this screen, so one pop
			// lands back on the library.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if sum.Finished {
		b.WriteString(finishedStyle.Width(width).Render("Book finished!"))
	} else {
		b.WriteString(theme.Title.Width(width).Render("Session complete"))
	}
	b.WriteString("\n\n")

	center(textStyle.Render(sum.BookTitle))
	b.WriteString("\n")

	// Active reading time, pauses excluded.
	mins := int(sum.ActiveTime.Minutes())
	secs := int(sum.ActiveTime.Seconds()) % 60
	center(textStyle.Render(fmt.Sprintf("Words: %d        Time: %d:%02d        Speed: %d wpm",
		sum.WordsRead, mins, secs, sum.AvgWPM())))
	b.WriteString("\n")

	center(dividerStyle.Render(strings.Repeat("─", min(width-8, 60))))
	b.WriteString("\n")

	pct := book.Progress(sum.EndIndex, sum.WordCount)
	if sum.Finished {
		pct = 1
	}
	center(components.NewProgressBar("Book", pct, true, min(width-8, 48)).View())

	if sum.Finished {
		center(dimStyle.Render(fmt.Sprintf("%d words, all read", sum.WordCount)))
	} else {
		center(dimStyle.Render(fmt.Sprintf("resumes at word %d of %d", sum.EndIndex+1, sum.WordCount)))
	}

	return b.String()
}

package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skimr/internal/ui/theme"
)

var (
	barLabelStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	barPercentStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	barFillStyle    = lipgloss.NewStyle().Background(theme.Secondary)
	barDoneStyle    = lipgloss.NewStyle().Background(theme.Success)
	barCapStyle     = lipgloss.NewStyle().Background(theme.Primary)
	barTrackStyle   = lipgloss.NewStyle().Background(theme.Border)
)

// ProgressBar displays how far into a book the reader is. Mid-book the
// exact position gets a one-cell cap; a finished book fills green.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders label, fill, position cap, and track on one line.
func (p ProgressBar) View() string {
	pct := p.Percent
	if pct < 0 {
		pct = 0
	} else if pct > 1 {
		pct = 1
	}

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(barLabelStyle.Render(p.Label))
		b.WriteString("  ")
	}

	reserved := lipgloss.Width(b.String())
	if p.ShowPercent {
		reserved += 6 // "  100%"
	}
	cols := p.Width - reserved
	if cols < 4 {
		cols = 4
	}

	fill := int(float64(cols) * pct)
	if fill > cols {
		fill = cols
	}
	track := cols - fill

	fillStyle := barFillStyle
	if pct >= 1 {
		fillStyle = barDoneStyle
	}
	b.WriteString(fillStyle.Render(strings.Repeat(" ", fill)))

	if pct > 0 && pct < 1 && track > 0 {
		b.WriteString(barCapStyle.Render(" "))
		track--
	}
	b.WriteString(barTrackStyle.Render(strings.Repeat(" ", track)))

	if p.ShowPercent {
		b.WriteString(barPercentStyle.Render(fmt.Sprintf("  %d%%", int(pct*100))))
	}

	return b.String()
}

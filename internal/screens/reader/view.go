package reader

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/ui/components"
	"github.com/abhisek/skimr/internal/ui/theme"
)

const (
	// reticleHalf is the dash run on each side of the focus tick.
	reticleHalf = 10

	// contextSpan is how many neighbouring words show on each side of the
	// current word while stopped.
	contextSpan = 4
)

// orpIndex picks the focus letter for a word of n runes. The eye fixates
// slightly left of a word's center, so the anchor shifts right slowly as
// words get longer.
func orpIndex(n int) int {
	switch {
	case n <= 1:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	case n <= 13:
		return 3
	default:
		return 4
	}
}

// letterSpacing maps the engine's font size onto extra spaces between
// letters. A terminal cannot scale glyphs, so a bigger "font" means wider
// tracking instead.
func letterSpacing(fontSize, minFont, maxFont int) int {
	span := maxFont - minFont
	if span <= 0 {
		return 0
	}
	s := (fontSize - minFont) * 3 / span
	if s < 0 {
		return 0
	}
	return s
}

// renderWordLine renders one word with its focus letter highlighted and
// positioned so the focus letter sits on the reticle column at width/2.
func renderWordLine(word string, spacing, width int) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	orp := orpIndex(len(runes))
	gap := strings.Repeat(" ", spacing)

	spread := func(rs []rune) string {
		parts := make([]string, len(rs))
		for i, c := range rs {
			parts[i] = string(c)
		}
		return strings.Join(parts, gap)
	}

	left := spread(runes[:orp])
	if left != "" {
		left += gap
	}
	focus := string(runes[orp])
	right := spread(runes[orp+1:])
	if right != "" {
		right = gap + right
	}

	start := width/2 - runewidth.StringWidth(left) - runewidth.StringWidth(focus)/2
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", start))
	if left != "" {
		b.WriteString(theme.Word.Render(left))
	}
	b.WriteString(theme.Focus.Render(focus))
	if right != "" {
		b.WriteString(theme.Word.Render(right))
	}
	return b.String()
}

// renderReticle renders a guide line with the given tick glyph at width/2.
func renderReticle(width int, tick string) string {
	start := width/2 - reticleHalf
	if start < 0 {
		start = 0
	}
	dash := strings.Repeat("─", reticleHalf)
	return strings.Repeat(" ", start) + theme.Reticle.Render(dash+tick+dash)
}

// renderContext shows the words around the current position. Only drawn
// while stopped; during playback surrounding text would pull the eye off
// the focus point.
func (r *ReaderScreen) renderContext(width int) string {
	if r.words.Len() == 0 {
		return ""
	}
	idx := r.snap.WordIndex
	lo := idx - contextSpan
	if lo < 0 {
		lo = 0
	}
	hi := idx + contextSpan
	if hi > r.words.Len()-1 {
		hi = r.words.Len() - 1
	}

	parts := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		w := r.words.Word(i)
		if i == idx {
			parts = append(parts, theme.Selected.Render(w))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(w))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, " "))
}

func (r *ReaderScreen) renderHUD(width int) string {
	wpmStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	wpm := wpmStyle.Render(fmt.Sprintf("%d wpm", r.snap.DisplayWPM))
	if r.snap.Braking {
		wpm += " " + theme.Braking.Render("rew")
	}

	parts := []string{
		wpm,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("size %d", r.engine.FontSize())),
		settingTag("cadence", r.settings.Cadence),
		settingTag("auto-rev", r.settings.AutoRev),
		settingTag("dead-man", r.settings.Deadman),
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "   "))
}

func settingTag(name string, on bool) string {
	if on {
		return lipgloss.NewStyle().Foreground(theme.Text).Render(name)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(name + " off")
}

func (r *ReaderScreen) renderProgress(width int) string {
	idx := r.snap.WordIndex
	total := r.words.Len()

	pos := idx + 1
	if pos > total {
		pos = total
	}

	bar := components.NewProgressBar("", book.Progress(idx, total), true, min(width-8, 48))
	posLine := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("word %d of %d", pos, total))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()) +
		"\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, posLine)
}

// renderReading is the main reading surface: reticle, word, HUD and
// progress, vertically centered in the content area.
func (r *ReaderScreen) renderReading(width, height int) string {
	idx := r.snap.WordIndex
	word := ""
	if r.words.Len() > 0 {
		if idx > r.words.Len()-1 {
			idx = r.words.Len() - 1
		}
		word = r.words.Word(idx)
	}

	spacing := letterSpacing(r.engine.FontSize(), r.cfg.Tuning.MinFontSize, r.cfg.Tuning.MaxFontSize)

	var b strings.Builder

	top := height/2 - 5
	if top > 0 {
		b.WriteString(strings.Repeat("\n", top))
	}

	if r.engine.Playing() {
		b.WriteString("\n")
	} else {
		b.WriteString(r.renderContext(width))
	}
	b.WriteString("\n\n")
	b.WriteString(renderReticle(width, "┬"))
	b.WriteString("\n")
	b.WriteString(renderWordLine(word, spacing, width))
	b.WriteString("\n")
	b.WriteString(renderReticle(width, "┴"))
	b.WriteString("\n\n")
	b.WriteString(r.renderHUD(width))
	b.WriteString("\n\n")
	b.WriteString(r.renderProgress(width))

	if !r.engine.Playing() {
		hint := "space or click to read"
		if r.settings.Deadman {
			hint = "space to read · hold the mouse to scrub"
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(hint)))
	}

	return b.String()
}

// renderGoto renders the jump-to-position dialog.
func (r *ReaderScreen) renderGoto(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Go to position"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Enter a percentage of the book (0-100)."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Jump to: "+r.gotoInput.View()))

	return b.String()
}

// renderOpening renders the loading state.
func renderOpening(width, height int, title string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  Opening %s...", title))
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

// Package layout provides the fixed chrome around screen content: a one
// line header, a one line key-hint footer, and minimum-size handling.
// The chrome stays deliberately small so the word line owns the screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skimr/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 16
)

var (
	brandStyle    = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	screenStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	barStyle      = lipgloss.NewStyle().Background(theme.BgCard)
	hintKeyStyle  = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	hintDescStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize prompt.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("skimr needs at least %d x %d\n\ncurrent size: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(msg)
}

// RenderHeader renders the single-line header: app name on the left,
// screen title centered in the remaining space.
func RenderHeader(title string, width int) string {
	brand := brandStyle.Render("  skimr")
	rest := width - lipgloss.Width(brand)
	if rest < 0 {
		rest = 0
	}
	line := brand + lipgloss.PlaceHorizontal(rest, lipgloss.Center, screenStyle.Render(title))
	return barStyle.Width(width).Render(line)
}

// RenderFooter renders the single-line footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString(hintDescStyle.Render("  ·  "))
		}
		b.WriteString(hintKeyStyle.Render(h.Key))
		b.WriteString(" ")
		b.WriteString(hintDescStyle.Render(h.Description))
	}
	return barStyle.Width(width).Render(b.String())
}

// RenderFrame stacks header, content, and footer, growing the content
// region to fill the terminal height.
func RenderFrame(header, content, footer string, width, height int) string {
	inner := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if inner < 0 {
		inner = 0
	}
	body := lipgloss.NewStyle().Width(width).Height(inner).Render(content)
	return header + "\n" + body + "\n" + footer
}

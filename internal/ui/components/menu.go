package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skimr/internal/ui/theme"
)

// MenuItem is one row of a Menu. Detail is optional secondary text
// rendered dim and column-aligned after the label; the library puts word
// counts and resume positions there.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical selection list. When MaxVisible is positive and the
// list is longer, rendering windows around the selection so a large
// library stays on screen.
type Menu struct {
	Items      []MenuItem
	Selected   int
	MaxVisible int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// Update moves the selection over enabled items and fires the selected
// item's action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the visible window of the menu.
func (m Menu) View() string {
	start, end := m.window()
	labelW := m.labelWidth()

	var b strings.Builder
	if start > 0 {
		b.WriteString(theme.Hint.Render("    ...") + "\n")
	}
	for i := start; i < end; i++ {
		item := m.Items[i]

		label := item.Label
		if labelW > 0 {
			label += strings.Repeat(" ", labelW-lipgloss.Width(item.Label))
		}

		prefix := "    "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == m.Selected:
			prefix = "  ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		case item.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}

		b.WriteString(style.Render(prefix + label))
		if item.Detail != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Detail))
		}
		b.WriteString("\n")
	}
	if end < len(m.Items) {
		b.WriteString(theme.Hint.Render("    ...") + "\n")
	}
	return b.String()
}

// window returns the half-open row range to draw, keeping the selection
// roughly centered once the list outgrows MaxVisible.
func (m Menu) window() (int, int) {
	n := len(m.Items)
	if m.MaxVisible <= 0 || n <= m.MaxVisible {
		return 0, n
	}
	start := m.Selected - m.MaxVisible/2
	if start < 0 {
		start = 0
	}
	if start > n-m.MaxVisible {
		start = n - m.MaxVisible
	}
	return start, start + m.MaxVisible
}

// labelWidth returns the alignment width for labels, or 0 when no item
// carries a detail column.
func (m Menu) labelWidth() int {
	w, hasDetail := 0, false
	for _, it := range m.Items {
		if lw := lipgloss.Width(it.Label); lw > w {
			w = lw
		}
		if it.Detail != "" {
			hasDetail = true
		}
	}
	if !hasDetail {
		return 0
	}
	return w
}

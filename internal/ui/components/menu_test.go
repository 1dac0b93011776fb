package components

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up onto a disabled head moved selection to %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
}

func TestMenuEnterFiresAction(t *testing.T) {
	fired := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		fired = true
		return nil
	}}})

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !fired {
		t.Error("enter did not invoke the action")
	}
}

func TestMenuWindowFollowsSelection(t *testing.T) {
	items := make([]MenuItem, 20)
	for i := range items {
		items[i] = MenuItem{Label: fmt.Sprintf("item %d", i)}
	}
	m := NewMenu(items)
	m.MaxVisible = 5

	start, end := m.window()
	if start != 0 || end != 5 {
		t.Fatalf("window = [%d,%d), want [0,5)", start, end)
	}

	m.Selected = 10
	start, end = m.window()
	if m.Selected < start || m.Selected >= end {
		t.Errorf("selection %d outside window [%d,%d)", m.Selected, start, end)
	}

	m.Selected = 19
	start, end = m.window()
	if start != 15 || end != 20 {
		t.Errorf("window = [%d,%d), want [15,20)", start, end)
	}
}

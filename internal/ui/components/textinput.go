package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for the two inline prompts: the
// library's import path and the reader's go-to percent. Numeric inputs
// reject anything but digits, including pastes.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput returns a focused input. A charLimit of 0 leaves the
// length unbounded.
func NewTextInput(placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{Model: ti, NumericOnly: numericOnly}
}

// Init starts cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update feeds the message through and then sanitizes numeric inputs, so
// pasted text can't smuggle non-digits in.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)

	if t.NumericOnly {
		if v := t.Model.Value(); v != digitsOnly(v) {
			t.Model.SetValue(digitsOnly(v))
		}
	}
	return t, cmd
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// View renders the input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input text.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// NumericValue parses the input as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(t.Model.Value())
}

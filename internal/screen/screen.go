// Package screen declares what the router requires of a screen, kept
// separate so screens and the router share no other coupling.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skimr/internal/ui/layout"
)

// Screen is one full-content view: the library, the reader, the summary,
// or the history list. The app frame owns the header and footer; a screen
// only ever renders the region between them.
type Screen interface {
	// Init returns the command to run when the screen enters the stack.
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep plus any
	// follow-up command. Returning a different Screen swaps the model in
	// place.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content region at the given size.
	View(width, height int) string

	// Title is shown centered in the header.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer
// instead of the stack-position defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is an optional interface for screens whose content can go
// stale while covered. When a pop re-exposes such a screen the router
// calls Refresh; the library uses this to pick up progress written by
// a closed reader.
type Refresher interface {
	Refresh() tea.Cmd
}

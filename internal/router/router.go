// Package router keeps the screen stack. The library sits at the bottom
// for the life of the program; reader, history, and summary screens come
// and go above it.
package router

import (
	"github.com/abhisek/skimr/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the active screen in place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a screen stack with a permanent root, so there is always an
// active screen. Navigation arrives as messages returned from screen
// commands; every other message goes to the active screen.
type Router struct {
	root    screen.Screen
	overlay []screen.Screen
}

// New creates a Router rooted at the given screen.
func New(root screen.Screen) *Router {
	return &Router{root: root}
}

// Active returns the screen currently receiving input.
func (r *Router) Active() screen.Screen {
	if n := len(r.overlay); n > 0 {
		return r.overlay[n-1]
	}
	return r.root
}

// Depth reports how many screens are stacked, the root included.
func (r *Router) Depth() int {
	return len(r.overlay) + 1
}

// Push overlays a screen and starts it.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.overlay = append(r.overlay, s)
	return s.Init()
}

// Pop closes the active overlay; the root cannot be popped. The screen a
// pop exposes gets a Refresh if it implements one, which is how the
// library picks up progress written by a closed reader.
func (r *Router) Pop() tea.Cmd {
	if len(r.overlay) == 0 {
		return nil
	}
	r.overlay = r.overlay[:len(r.overlay)-1]
	if ref, ok := r.Active().(screen.Refresher); ok {
		return ref.Refresh()
	}
	return nil
}

// Replace swaps the active screen for a new one and starts it, leaving the
// depth unchanged. The reader uses this to become the summary screen, so
// the summary's single pop lands back on the library.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.overlay); n > 0 {
		r.overlay[n-1] = s
	} else {
		r.root = s
	}
	return s.Init()
}

// Update routes navigation messages to the stack and everything else to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	}

	next, cmd := r.Active().Update(msg)
	if n := len(r.overlay); n > 0 {
		r.overlay[n-1] = next
	} else {
		r.root = next
	}
	return cmd
}

// View renders the active screen at the given content size.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

package reader

import (
	"time"

	"github.com/abhisek/skimr/internal/book"
)

// bookLoadedMsg is sent when the book's word sequence has been loaded.
type bookLoadedMsg struct {
	Words book.Words
	Err   error
}

// frameTickMsg drives one playback frame. The engine reads its own clock;
// the tick time is only here to satisfy tea.Tick.
type frameTickMsg time.Time

// progressSavedMsg reports the outcome of an async progress write.
type progressSavedMsg struct {
	Err error
}

// sessionSavedMsg reports the outcome of the session history insert.
type sessionSavedMsg struct {
	Err error
}

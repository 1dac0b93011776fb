package reader

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/config"
	"github.com/abhisek/skimr/internal/playback"
	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/screen"
	"github.com/abhisek/skimr/internal/screens/summary"
	"github.com/abhisek/skimr/internal/stats"
	"github.com/abhisek/skimr/internal/store"
	"github.com/abhisek/skimr/internal/ui/components"
	"github.com/abhisek/skimr/internal/ui/layout"
)

const (
	// wpmKeyStep is the speed change per arrow key or wheel notch.
	wpmKeyStep = 25
	// fontKeyStep is the font size change per key press.
	fontKeyStep = 4

	storeTimeout = 5 * time.Second
)

// progressSave is a bookmark captured from the engine's progress sink,
// waiting to be flushed to the store.
type progressSave struct {
	bookID    string
	wordIndex int
}

// ReaderScreen is the reading surface: a word stream rendered one word at
// a time, driven by the playback engine. The screen owns the frame tick
// loop and translates key and mouse input into engine transitions; the
// engine owns all pacing state.
type ReaderScreen struct {
	store    *store.Store
	cfg      config.Config
	settings playback.Settings
	info     store.BookInfo

	words  book.Words
	engine *playback.Engine
	clock  playback.Clock

	loaded bool
	errMsg string

	snap playback.Snapshot

	// ticking is true while a frame tick is scheduled or in flight.
	// It keeps stop/start churn from stacking parallel tick chains.
	ticking bool

	mouseHeld bool

	pendingSave *progressSave

	// session accounting
	started       bool
	finished      bool
	ending        bool
	sessionStart  time.Time
	activeSinceMs int64
	activeMs      int64
	wordsRead     int

	gotoActive bool
	gotoInput  components.TextInput
}

// New creates a reader screen for the given book. The word sequence is
// loaded asynchronously in Init.
func New(st *store.Store, cfg config.Config, info store.BookInfo) *ReaderScreen {
	return &ReaderScreen{
		store:         st,
		cfg:           cfg,
		settings:      cfg.Settings,
		info:          info,
		clock:         playback.NewSystemClock(),
		activeSinceMs: -1,
	}
}

func (r *ReaderScreen) Init() tea.Cmd {
	st := r.store
	id := r.info.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		words, err := st.Words(ctx, id)
		return bookLoadedMsg{Words: words, Err: err}
	}
}

func (r *ReaderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bookLoadedMsg:
		return r.handleLoaded(msg)
	case frameTickMsg:
		return r.handleFrameTick()
	case tea.KeyMsg:
		return r.handleKey(msg)
	case tea.MouseClickMsg:
		return r.handleMouseClick(tea.Mouse(msg))
	case tea.MouseReleaseMsg:
		return r.handleMouseRelease()
	case tea.MouseMotionMsg:
		return r.handleMouseMotion(tea.Mouse(msg))
	case tea.MouseWheelMsg:
		return r.handleMouseWheel(tea.Mouse(msg))
	case progressSavedMsg:
		if msg.Err != nil {
			fmt.Fprintf(os.Stderr, "skimr: save progress: %v\n", msg.Err)
		}
		return r, nil
	case sessionSavedMsg:
		if msg.Err != nil {
			fmt.Fprintf(os.Stderr, "skimr: save session: %v\n", msg.Err)
		}
		return r, nil
	}

	if r.gotoActive {
		var cmd tea.Cmd
		r.gotoInput, cmd = r.gotoInput.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *ReaderScreen) handleLoaded(msg bookLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		r.errMsg = fmt.Sprintf("could not open book: %v", msg.Err)
		return r, nil
	}
	r.words = msg.Words
	r.engine = playback.NewEngine(r.cfg.Tuning, msg.Words, r.info.ID, r.info.WordIndex, r.recordProgress)
	r.snap = r.engine.Snapshot()
	r.loaded = true
	return r, nil
}

// recordProgress is the engine's progress sink. The engine calls it
// synchronously inside Stop, which only ever runs from Update, so a plain
// field is safe.
func (r *ReaderScreen) recordProgress(bookID string, wordIndex int) {
	r.pendingSave = &progressSave{bookID: bookID, wordIndex: wordIndex}
}

// takeSaveCmd drains the pending bookmark into an async store write.
func (r *ReaderScreen) takeSaveCmd() tea.Cmd {
	if r.pendingSave == nil {
		return nil
	}
	save := *r.pendingSave
	r.pendingSave = nil
	st := r.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return progressSavedMsg{Err: st.SaveProgress(ctx, save.bookID, save.wordIndex)}
	}
}

func (r *ReaderScreen) tickCmd() tea.Cmd {
	interval := time.Duration(r.cfg.Reader.FrameMs) * time.Millisecond
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (r *ReaderScreen) handleFrameTick() (screen.Screen, tea.Cmd) {
	if r.engine == nil {
		r.ticking = false
		return r, nil
	}

	prevIndex := r.engine.WordIndex()
	prevPlaying := r.engine.Playing()
	r.snap = r.engine.Step(r.clock.NowMs(), r.settings)

	if r.snap.Playing {
		if d := r.snap.WordIndex - prevIndex; d > 0 {
			r.wordsRead += d
		}
		return r, r.tickCmd()
	}

	r.ticking = false
	if prevPlaying {
		// The engine stopped itself, which only happens at the end of
		// the book.
		r.wordsRead += r.words.Len() - prevIndex
		r.finished = true
		r.markStopped()
		return r, tea.Batch(r.takeSaveCmd(), r.endSession())
	}
	return r, nil
}

func (r *ReaderScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if r.errMsg != "" {
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !r.loaded {
		return r, nil
	}
	if r.gotoActive {
		return r.handleGotoKey(msg)
	}

	switch msg.String() {
	case " ", "space":
		// The keyboard cannot hold a button down, so space toggles even
		// in dead-man mode.
		if r.engine.Playing() {
			return r, r.stopPlayback()
		}
		return r, r.startPlayback(0, 0)

	case "esc", "q":
		if r.engine.Playing() {
			return r, r.stopPlayback()
		}
		return r, r.leave()

	case "left", "h":
		r.engine.NudgeWPM(r.clock.NowMs(), -wpmKeyStep)
		return r, nil
	case "right", "l":
		r.engine.NudgeWPM(r.clock.NowMs(), wpmKeyStep)
		return r, nil

	case "up", "k", "+", "=":
		r.engine.NudgeFontSize(fontKeyStep)
		return r, nil
	case "down", "j", "-":
		r.engine.NudgeFontSize(-fontKeyStep)
		return r, nil

	case "c":
		r.settings.Cadence = !r.settings.Cadence
		return r, nil
	case "a":
		r.settings.AutoRev = !r.settings.AutoRev
		return r, nil
	case "d":
		r.settings.Deadman = !r.settings.Deadman
		return r, nil

	case "g":
		if !r.engine.Playing() {
			r.gotoActive = true
			r.gotoInput = components.NewTextInput("0-100", true, 12)
			return r, r.gotoInput.Init()
		}
		return r, nil

	case "r":
		if !r.engine.Playing() {
			r.engine.Seek(0)
			r.snap = r.engine.Snapshot()
		}
		return r, nil
	}
	return r, nil
}

func (r *ReaderScreen) handleGotoKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		r.gotoActive = false
		return r, nil
	case "enter":
		pct, err := r.gotoInput.NumericValue()
		r.gotoActive = false
		if err != nil {
			return r, nil
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		target := pct * r.words.Len() / 100
		r.engine.Seek(target)
		r.snap = r.engine.Snapshot()
		return r, nil
	}
	var cmd tea.Cmd
	r.gotoInput, cmd = r.gotoInput.Update(msg)
	return r, cmd
}

func (r *ReaderScreen) handleMouseClick(m tea.Mouse) (screen.Screen, tea.Cmd) {
	if !r.loaded || m.Button != tea.MouseLeft {
		return r, nil
	}
	r.mouseHeld = true
	x, y := r.scaleMouse(m.X, m.Y)

	if r.settings.Deadman {
		return r, r.startPlayback(x, y)
	}
	if r.engine.Playing() {
		return r, r.stopPlayback()
	}
	return r, r.startPlayback(x, y)
}

func (r *ReaderScreen) handleMouseRelease() (screen.Screen, tea.Cmd) {
	wasHeld := r.mouseHeld
	r.mouseHeld = false
	if !wasHeld || !r.loaded {
		return r, nil
	}
	r.engine.DragEnd(r.clock.NowMs())
	if r.settings.Deadman {
		return r, r.stopPlayback()
	}
	return r, nil
}

func (r *ReaderScreen) handleMouseMotion(m tea.Mouse) (screen.Screen, tea.Cmd) {
	if !r.mouseHeld || !r.loaded {
		return r, nil
	}
	x, y := r.scaleMouse(m.X, m.Y)
	r.engine.DragMove(r.clock.NowMs(), x, y)
	return r, nil
}

func (r *ReaderScreen) handleMouseWheel(m tea.Mouse) (screen.Screen, tea.Cmd) {
	if !r.loaded {
		return r, nil
	}
	switch m.Button {
	case tea.MouseWheelUp:
		r.engine.NudgeWPM(r.clock.NowMs(), wpmKeyStep)
	case tea.MouseWheelDown:
		r.engine.NudgeWPM(r.clock.NowMs(), -wpmKeyStep)
	}
	return r, nil
}

// scaleMouse converts terminal cell coordinates into the pixel-ish space
// the drag tuning constants are calibrated for. Cells are far coarser
// than pixels, and taller than wide.
func (r *ReaderScreen) scaleMouse(x, y int) (int, int) {
	sx := int(math.Round(float64(x) * r.cfg.Reader.DragXScale))
	sy := int(math.Round(float64(y) * r.cfg.Reader.DragYScale))
	return sx, sy
}

func (r *ReaderScreen) startPlayback(x, y int) tea.Cmd {
	if r.engine == nil || r.engine.Playing() {
		return nil
	}
	r.engine.Start(r.clock.NowMs(), x, y)
	if !r.started {
		r.started = true
		r.sessionStart = time.Now()
	}
	r.activeSinceMs = r.clock.NowMs()
	r.snap = r.engine.Snapshot()
	if !r.ticking {
		r.ticking = true
		return r.tickCmd()
	}
	return nil
}

func (r *ReaderScreen) stopPlayback() tea.Cmd {
	if r.engine == nil || !r.engine.Playing() {
		return nil
	}
	r.engine.Stop()
	r.markStopped()
	r.snap = r.engine.Snapshot()
	return r.takeSaveCmd()
}

func (r *ReaderScreen) markStopped() {
	if r.activeSinceMs >= 0 {
		r.activeMs += r.clock.NowMs() - r.activeSinceMs
		r.activeSinceMs = -1
	}
}

// leave closes the screen. A session with words read is recorded and
// handed to the summary screen; an idle visit just pops back.
func (r *ReaderScreen) leave() tea.Cmd {
	if !r.started || r.wordsRead == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return r.endSession()
}

func (r *ReaderScreen) endSession() tea.Cmd {
	if r.ending {
		return nil
	}
	r.ending = true

	sum := r.buildSummary()
	st := r.store
	rec := sum.Record()
	insert := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return sessionSavedMsg{Err: st.InsertSession(ctx, rec)}
	}
	// Replace rather than push so that leaving the summary lands back on
	// the library.
	replace := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
	return tea.Batch(insert, replace)
}

func (r *ReaderScreen) buildSummary() *stats.SessionSummary {
	return &stats.SessionSummary{
		BookID:     r.info.ID,
		BookTitle:  r.info.Title,
		StartedAt:  r.sessionStart,
		EndedAt:    time.Now(),
		WordsRead:  r.wordsRead,
		ActiveTime: time.Duration(r.activeMs) * time.Millisecond,
		EndIndex:   r.engine.WordIndex(),
		WordCount:  r.words.Len(),
		Finished:   r.finished,
	}
}

func (r *ReaderScreen) Title() string {
	return r.info.Title
}

func (r *ReaderScreen) View(width, height int) string {
	if r.errMsg != "" {
		return renderError(width, height, r.errMsg)
	}
	if !r.loaded {
		return renderOpening(width, height, r.info.Title)
	}
	if r.gotoActive {
		return r.renderGoto(width, height)
	}
	return r.renderReading(width, height)
}

func (r *ReaderScreen) KeyHints() []layout.KeyHint {
	if r.gotoActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Jump"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if r.engine != nil && r.engine.Playing() {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Stop"},
			{Key: "Drag", Description: "Speed / Size"},
			{Key: "←→", Description: "Speed"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Read"},
		{Key: "←→", Description: "Speed"},
		{Key: "↑↓", Description: "Size"},
		{Key: "g", Description: "Go to"},
		{Key: "Esc", Description: "Back"},
	}
}

package playback

import "math"

// Engine drives a single reading session: it owns the playback State,
// maps drag gestures onto speed and font size, and advances the word
// index on each frame tick. All methods must be called from the same
// goroutine (the host event loop); timestamps are monotonic milliseconds
// supplied by the caller.
type Engine struct {
	cfg        Config
	seq        WordSequence
	bookID     string
	onProgress ProgressFunc

	state State
	drag  *dragSession

	// braking caches the last frame's brake flag for snapshot polling.
	braking bool
}

// NewEngine creates an engine positioned at resumeIndex with the
// configured starting speed and font size. The index is clamped into the
// sequence's range.
func NewEngine(cfg Config, seq WordSequence, bookID string, resumeIndex int, onProgress ProgressFunc) *Engine {
	idx := resumeIndex
	if idx < 0 {
		idx = 0
	}
	if n := seq.Len(); idx >= n && n > 0 {
		idx = n - 1
	}
	return &Engine{
		cfg:        cfg,
		seq:        seq,
		bookID:     bookID,
		onProgress: onProgress,
		state: State{
			WordIndex: idx,
			TargetWPM: clampInt(cfg.StartWPM, cfg.MinWPM, cfg.MaxWPM),
			FontSize:  clampInt(cfg.StartFontSize, cfg.MinFontSize, cfg.MaxFontSize),
		},
	}
}

// Start begins playback. Starting at or past the last word restarts from
// the beginning. A drag session is opened at the triggering pointer
// position so the same gesture that started playback can steer it.
// No-op while already playing.
func (e *Engine) Start(now int64, x, y int) {
	if e.state.Playing {
		return
	}
	if e.state.WordIndex >= e.seq.Len()-1 {
		e.state.WordIndex = 0
	}
	e.state.Playing = true
	e.state.StartMs = now
	e.state.LastFrameMs = now
	e.state.AccumulatedMs = 0
	e.state.CruiseWPM = e.state.TargetWPM
	e.drag = &dragSession{
		startX:        x,
		startY:        y,
		startWPM:      e.state.TargetWPM,
		startFontSize: e.state.FontSize,
	}
}

// Stop halts playback, rewinds a few words so the reader can regain
// context, and reports the resulting index to the progress sink exactly
// once. No-op while already stopped. Frame timing is cleared so nothing
// bleeds into the next Start.
func (e *Engine) Stop() {
	if !e.state.Playing {
		return
	}
	e.state.Playing = false
	e.state.CurrentWPM = 0
	e.state.WordIndex = maxInt(0, e.state.WordIndex-e.cfg.RewindCount)
	e.state.AccumulatedMs = 0
	e.state.LastFrameMs = 0
	e.state.Dragging = false
	e.drag = nil
	e.braking = false
	if e.onProgress != nil {
		e.onProgress(e.bookID, e.state.WordIndex)
	}
}

// DragMove applies a pointer position to the open drag session. Deltas
// are measured from the session origin. Rightward movement raises speed;
// upward movement raises font size. A move past the cruise setpoint is
// sticky (cruise follows), anything below it is an elastic brake (cruise
// holds so auto-rev can return). Silently ignored without a session.
func (e *Engine) DragMove(now int64, x, y int) {
	if !e.state.Playing || e.drag == nil {
		return
	}

	dx := float64(x - e.drag.startX)
	dy := float64(y - e.drag.startY)

	newWPM := clampFloat(float64(e.drag.startWPM)+dx*e.cfg.WPMPerPixel, float64(e.cfg.MinWPM), float64(e.cfg.MaxWPM))
	newFont := clampFloat(float64(e.drag.startFontSize)-dy*e.cfg.FontPerPixel, float64(e.cfg.MinFontSize), float64(e.cfg.MaxFontSize))
	e.state.FontSize = int(math.Round(newFont))

	w := int(math.Round(newWPM))
	if w > e.state.CruiseWPM {
		e.state.TargetWPM = w
		e.state.CruiseWPM = w
	} else {
		e.state.TargetWPM = w
	}

	e.state.Dragging = true
	e.state.LastDragMs = now
}

// DragEnd closes the drag session and stamps the quiet-period clock that
// gates auto-rev. No-op without a session.
func (e *Engine) DragEnd(now int64) {
	if e.drag == nil {
		return
	}
	e.drag = nil
	e.state.Dragging = false
	e.state.LastDragMs = now
}

// NudgeWPM adjusts the target speed by delta. A nudge is a quantized drag:
// while playing it follows the same contract, sticky above the cruise
// setpoint and an elastic brake below it. While stopped it simply retunes
// the speed the next Start will cruise at.
func (e *Engine) NudgeWPM(now int64, delta int) {
	w := clampInt(e.state.TargetWPM+delta, e.cfg.MinWPM, e.cfg.MaxWPM)
	e.state.TargetWPM = w
	if !e.state.Playing {
		return
	}
	if w > e.state.CruiseWPM {
		e.state.CruiseWPM = w
	}
	e.state.LastDragMs = now
}

// NudgeFontSize adjusts the display size by delta, clamped to the
// configured range.
func (e *Engine) NudgeFontSize(delta int) {
	e.state.FontSize = clampInt(e.state.FontSize+delta, e.cfg.MinFontSize, e.cfg.MaxFontSize)
}

// Seek jumps to a word index, clamped into the sequence's range. The
// partial dwell accumulator resets so the new word gets its full display
// time.
func (e *Engine) Seek(index int) {
	idx := clampInt(index, 0, maxInt(0, e.seq.Len()-1))
	e.state.WordIndex = idx
	e.state.AccumulatedMs = 0
}

// Step runs one frame update at the given monotonic timestamp and returns
// the observable snapshot. While playing it ramps the effective speed,
// applies auto-rev, and advances the word index by however many dwell
// periods the elapsed time covers. Reaching the end of the sequence stops
// playback.
func (e *Engine) Step(now int64, st Settings) Snapshot {
	var deltaMs float64
	if e.state.LastFrameMs != 0 {
		deltaMs = float64(now - e.state.LastFrameMs)
	}
	e.state.LastFrameMs = now

	if !e.state.Playing {
		e.state.CurrentWPM = 0
		e.braking = false
		return e.Snapshot()
	}

	rampProgress := 1.0
	if e.cfg.RampUpMs > 0 {
		rampProgress = clampFloat(float64(now-e.state.StartMs)/float64(e.cfg.RampUpMs), 0, 1)
	}
	rampEase := 1 - pow4(1-rampProgress)

	effective := float64(e.state.TargetWPM)
	if st.AutoRev && !e.state.Dragging && e.state.TargetWPM < e.state.CruiseWPM {
		sinceDrag := now - e.state.LastDragMs
		if sinceDrag > e.cfg.AutoRevDelayMs && e.cfg.AutoRevDurationMs > 0 {
			revProgress := clampFloat(float64(sinceDrag-e.cfg.AutoRevDelayMs)/float64(e.cfg.AutoRevDurationMs), 0, 1)
			revEase := 1 - pow3(1-revProgress)
			effective = float64(e.state.TargetWPM) + float64(e.state.CruiseWPM-e.state.TargetWPM)*revEase
			if revProgress >= 0.99 {
				// Snap to the setpoint rather than creeping toward it forever.
				e.state.TargetWPM = e.state.CruiseWPM
			}
		}
	}

	e.state.CurrentWPM = int(math.Floor(effective * rampEase))
	e.braking = e.state.CruiseWPM > 0 && effective < float64(e.state.CruiseWPM)

	if e.state.CurrentWPM > 0 && e.seq.Len() > 0 {
		dwellMs := 60000.0 / float64(e.state.CurrentWPM)
		if st.Cadence {
			dwellMs *= CadenceWeight(e.seq.Word(e.state.WordIndex))
		}
		e.state.AccumulatedMs += deltaMs
		for e.state.AccumulatedMs >= dwellMs {
			e.state.AccumulatedMs -= dwellMs
			e.state.WordIndex++
			if e.state.WordIndex >= e.seq.Len() {
				e.Stop()
				break
			}
		}
	}

	return e.Snapshot()
}

// Snapshot returns the current observable state without advancing time.
func (e *Engine) Snapshot() Snapshot {
	display := e.state.CurrentWPM
	if !e.state.Playing {
		display = e.state.TargetWPM
	}
	return Snapshot{
		WordIndex:  e.state.WordIndex,
		DisplayWPM: display,
		Braking:    e.braking,
		Playing:    e.state.Playing,
	}
}

// TargetWPM returns the current target speed.
func (e *Engine) TargetWPM() int {
	return e.state.TargetWPM
}

// CruiseWPM returns the sticky setpoint auto-rev recovers toward. Only
// meaningful while playing; Start resets it to the target speed.
func (e *Engine) CruiseWPM() int {
	return e.state.CruiseWPM
}

// FontSize returns the drag-controlled display size.
func (e *Engine) FontSize() int {
	return e.state.FontSize
}

// WordIndex returns the current position in the sequence.
func (e *Engine) WordIndex() int {
	return e.state.WordIndex
}

// Playing reports whether playback is running.
func (e *Engine) Playing() bool {
	return e.state.Playing
}

func pow3(v float64) float64 {
	return v * v * v
}

func pow4(v float64) float64 {
	return v * v * v * v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

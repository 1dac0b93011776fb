package playback

// WordSequence is the ordered, fixed-length token list for a reading
// session. The engine only needs its length and indexed access.
type WordSequence interface {
	Len() int
	Word(i int) string
}

// Settings are the per-frame reading preferences. They are read every
// frame and never mutated by the engine.
type Settings struct {
	// Cadence scales each word's dwell time by its cadence weight.
	Cadence bool

	// AutoRev re-accelerates toward cruise after a braking drag goes quiet.
	AutoRev bool

	// Deadman selects the hold-to-read input policy (release stops
	// playback). Consulted by the input layer, not by the frame update.
	Deadman bool
}

// ProgressFunc receives the word index to persist on each Stop transition.
// It must not block; failures are the sink's concern and never reach the
// engine.
type ProgressFunc func(bookID string, wordIndex int)

// Snapshot is the per-frame observable state consumed by the display.
type Snapshot struct {
	// WordIndex is the token currently on screen.
	WordIndex int

	// DisplayWPM is the speed readout: the ramped current speed while
	// playing, the target speed while stopped.
	DisplayWPM int

	// Braking is true while the effective speed sits below cruise.
	Braking bool

	// Playing is true between Start and Stop.
	Playing bool
}

// State is the mutable playback record. It is owned exclusively by the
// Engine; pointer handlers and the frame loop mutate it only through
// Engine methods, serialized on the host's event loop.
type State struct {
	// Playing is true while the frame loop advances words.
	Playing bool

	// WordIndex is the current position in the word sequence.
	WordIndex int

	// TargetWPM is the speed set by the most recent input gesture.
	TargetWPM int

	// CruiseWPM is the durable speed setpoint. It matches TargetWPM while
	// cruising and sits above it while braking, so auto-rev knows where
	// to return.
	CruiseWPM int

	// CurrentWPM is the ramped effective speed, recomputed every frame.
	CurrentWPM int

	// FontSize is the drag-controlled display size. Purely visual.
	FontSize int

	// AccumulatedMs is the dwell-time accumulator driving word advances.
	AccumulatedMs float64

	// LastFrameMs is the timestamp of the previous frame update, 0 before
	// the first frame.
	LastFrameMs int64

	// StartMs is the timestamp of the last Start transition.
	StartMs int64

	// LastDragMs is the timestamp of the last drag move or release.
	LastDragMs int64

	// Dragging is true between a drag move and its release.
	Dragging bool
}

// dragSession anchors an active drag gesture. Speed and font size are
// always computed from these origins, not from the previous pointer
// position, so a gesture can be retraced without drift.
type dragSession struct {
	startX        int
	startY        int
	startWPM      int
	startFontSize int
}

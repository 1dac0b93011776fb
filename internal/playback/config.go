package playback

const (
	// DefaultMinWPM is the floor for user-set reading speeds.
	DefaultMinWPM = 100

	// DefaultMaxWPM is the ceiling for user-set reading speeds.
	DefaultMaxWPM = 1500

	// DefaultStartWPM is the target speed for a fresh reading session.
	DefaultStartWPM = 300

	// DefaultMinFontSize and DefaultMaxFontSize bound the display size scale.
	DefaultMinFontSize = 32
	DefaultMaxFontSize = 128

	// DefaultStartFontSize is the display size for a fresh reading session.
	DefaultStartFontSize = 64

	// DefaultRampUpMs is how long the speed ramp takes after Start.
	DefaultRampUpMs = 1500

	// DefaultRewindCount is how many words Stop rewinds.
	DefaultRewindCount = 3

	// DefaultAutoRevDelayMs is the quiet period before auto-rev begins.
	DefaultAutoRevDelayMs = 2000

	// DefaultAutoRevDurationMs is how long auto-rev takes to reach cruise.
	DefaultAutoRevDurationMs = 3000

	// DefaultWPMPerPixel is the horizontal drag sensitivity.
	DefaultWPMPerPixel = 2.0

	// DefaultFontPerPixel is the vertical drag sensitivity.
	DefaultFontPerPixel = 0.5
)

// Config holds the engine's tunable constants. Values are set once at
// session creation and never change while the engine runs.
type Config struct {
	// MinWPM and MaxWPM bound targetWPM and cruiseWPM.
	MinWPM int
	MaxWPM int

	// StartWPM is the initial target speed for a new session.
	StartWPM int

	// MinFontSize and MaxFontSize bound the drag-controlled display size.
	MinFontSize int
	MaxFontSize int

	// StartFontSize is the initial display size for a new session.
	StartFontSize int

	// RampUpMs is the duration of the post-Start acceleration ramp.
	RampUpMs int64

	// RewindCount is how many words to step back on Stop.
	RewindCount int

	// AutoRevDelayMs is how long after the last drag before auto-rev engages.
	AutoRevDelayMs int64

	// AutoRevDurationMs is how long auto-rev takes to return to cruise.
	AutoRevDurationMs int64

	// WPMPerPixel converts horizontal drag distance to a speed delta.
	WPMPerPixel float64

	// FontPerPixel converts vertical drag distance to a font-size delta.
	FontPerPixel float64
}

// DefaultConfig returns a Config with the standard tuning.
func DefaultConfig() Config {
	return Config{
		MinWPM:            DefaultMinWPM,
		MaxWPM:            DefaultMaxWPM,
		StartWPM:          DefaultStartWPM,
		MinFontSize:       DefaultMinFontSize,
		MaxFontSize:       DefaultMaxFontSize,
		StartFontSize:     DefaultStartFontSize,
		RampUpMs:          DefaultRampUpMs,
		RewindCount:       DefaultRewindCount,
		AutoRevDelayMs:    DefaultAutoRevDelayMs,
		AutoRevDurationMs: DefaultAutoRevDurationMs,
		WPMPerPixel:       DefaultWPMPerPixel,
		FontPerPixel:      DefaultFontPerPixel,
	}
}

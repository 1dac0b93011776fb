package playback

import "time"

// Clock supplies the monotonic millisecond timestamps that drive the
// engine's frame updates.
type Clock interface {
	NowMs() int64
}

// SystemClock reports milliseconds elapsed since its creation, backed by
// the runtime's monotonic clock.
type SystemClock struct {
	base time.Time
}

// NewSystemClock creates a clock anchored at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{base: time.Now()}
}

// NowMs returns milliseconds elapsed since the clock was created.
func (c *SystemClock) NowMs() int64 {
	return time.Since(c.base).Milliseconds()
}

// MockClock is a controllable time source for tests.
type MockClock struct {
	ms int64
}

// NewMockClock creates a mock clock at the given millisecond timestamp.
func NewMockClock(startMs int64) *MockClock {
	return &MockClock{ms: startMs}
}

// NowMs returns the current mocked timestamp.
func (c *MockClock) NowMs() int64 {
	return c.ms
}

// SetMs sets the current mocked timestamp.
func (c *MockClock) SetMs(ms int64) {
	c.ms = ms
}

// Advance moves the mocked timestamp forward.
func (c *MockClock) Advance(deltaMs int64) {
	c.ms += deltaMs
}

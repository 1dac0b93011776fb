package playback

import "testing"

func dragConfig(startWPM int) Config {
	cfg := DefaultConfig()
	cfg.StartWPM = startWPM
	return cfg
}

func TestDragMove_StickyThenElastic(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)
	e.Start(1000, 100, 50)

	// +50px rightward exceeds cruise: sticky, both setpoints move.
	e.DragMove(1016, 150, 50)
	if e.state.TargetWPM != 500 {
		t.Errorf("TargetWPM = %d, want 500", e.state.TargetWPM)
	}
	if e.state.CruiseWPM != 500 {
		t.Errorf("CruiseWPM = %d, want 500", e.state.CruiseWPM)
	}

	// Back to +20px net from the origin: below cruise, elastic brake.
	e.DragMove(1032, 120, 50)
	if e.state.TargetWPM != 440 {
		t.Errorf("TargetWPM = %d, want 440", e.state.TargetWPM)
	}
	if e.state.CruiseWPM != 500 {
		t.Errorf("CruiseWPM = %d, want 500 (elastic brake keeps cruise)", e.state.CruiseWPM)
	}
	if !e.state.Dragging {
		t.Error("expected Dragging to be set")
	}
	if e.state.LastDragMs != 1032 {
		t.Errorf("LastDragMs = %d, want 1032", e.state.LastDragMs)
	}
}

func TestDragMove_DeltasAnchoredAtOrigin(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)
	e.Start(1000, 100, 50)

	e.DragMove(1016, 150, 50)
	e.DragMove(1032, 100, 50) // retrace to the origin
	if e.state.TargetWPM != 400 {
		t.Errorf("TargetWPM = %d, want 400 after retracing to origin", e.state.TargetWPM)
	}
}

func TestDragMove_ClampsWPM(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)
	e.Start(1000, 0, 0)

	e.DragMove(1016, 10000, 0)
	if e.state.TargetWPM != DefaultMaxWPM {
		t.Errorf("TargetWPM = %d, want clamped to %d", e.state.TargetWPM, DefaultMaxWPM)
	}

	e.DragMove(1032, -10000, 0)
	if e.state.TargetWPM != DefaultMinWPM {
		t.Errorf("TargetWPM = %d, want clamped to %d", e.state.TargetWPM, DefaultMinWPM)
	}
}

func TestDragMove_FontSize(t *testing.T) {
	e := NewEngine(DefaultConfig(), makeWords(100), "b1", 0, nil)
	e.Start(1000, 100, 200)

	// Upward drag (smaller y) grows the font: 64 - (-64 * 0.5) = 96.
	e.DragMove(1016, 100, 136)
	if got := e.FontSize(); got != 96 {
		t.Errorf("FontSize = %d, want 96", got)
	}

	// Downward drag shrinks it, clamped at the floor.
	e.DragMove(1032, 100, 400)
	if got := e.FontSize(); got != DefaultMinFontSize {
		t.Errorf("FontSize = %d, want clamped to %d", got, DefaultMinFontSize)
	}

	// Half-unit deltas round to the nearest size.
	e.DragMove(1048, 100, 199)
	if got := e.FontSize(); got != 65 {
		t.Errorf("FontSize = %d, want 65", got)
	}
}

func TestDragMove_WithoutSessionIgnored(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)

	e.DragMove(1000, 500, 500)
	if e.state.TargetWPM != 400 {
		t.Errorf("TargetWPM = %d, want 400 (no session, move discarded)", e.state.TargetWPM)
	}
	if e.state.Dragging {
		t.Error("expected Dragging to stay false")
	}

	// Stop closes the session, so later moves are discarded too.
	e.Start(1000, 0, 0)
	e.Stop()
	e.DragMove(1100, 500, 500)
	if e.state.TargetWPM != 400 {
		t.Errorf("TargetWPM = %d, want 400 after stop", e.state.TargetWPM)
	}
}

func TestDragEnd_ClosesSession(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)
	e.Start(1000, 100, 100)
	e.DragMove(1016, 150, 100)

	e.DragEnd(1100)
	if e.state.Dragging {
		t.Error("expected Dragging to clear on DragEnd")
	}
	if e.state.LastDragMs != 1100 {
		t.Errorf("LastDragMs = %d, want 1100", e.state.LastDragMs)
	}

	// The session is gone; further moves are discarded.
	e.DragMove(1116, 300, 100)
	if e.state.TargetWPM != 500 {
		t.Errorf("TargetWPM = %d, want 500 (move after DragEnd discarded)", e.state.TargetWPM)
	}

	// Ending again is a no-op and does not refresh the drag clock.
	e.DragEnd(1200)
	if e.state.LastDragMs != 1100 {
		t.Errorf("LastDragMs = %d, want 1100 after redundant DragEnd", e.state.LastDragMs)
	}
}

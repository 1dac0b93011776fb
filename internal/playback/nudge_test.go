package playback

import "testing"

func TestNudgeWPM_StickyAboveCruise(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)
	e.Start(1000, 0, 0)

	e.NudgeWPM(1500, 25)
	if e.state.TargetWPM != 425 {
		t.Errorf("TargetWPM = %d, want 425", e.state.TargetWPM)
	}
	if e.state.CruiseWPM != 425 {
		t.Errorf("CruiseWPM = %d, want 425 (nudge up is sticky)", e.state.CruiseWPM)
	}
	if e.state.LastDragMs != 1500 {
		t.Errorf("LastDragMs = %d, want 1500", e.state.LastDragMs)
	}
}

func TestNudgeWPM_ElasticBelowCruise(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)
	e.Start(1000, 0, 0)

	e.NudgeWPM(1500, -25)
	if e.state.TargetWPM != 375 {
		t.Errorf("TargetWPM = %d, want 375", e.state.TargetWPM)
	}
	if e.state.CruiseWPM != 400 {
		t.Errorf("CruiseWPM = %d, want 400 (nudge down is an elastic brake)", e.state.CruiseWPM)
	}
}

func TestNudgeWPM_WhileStoppedRetunes(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)

	e.NudgeWPM(1000, 100)
	if e.state.TargetWPM != 500 {
		t.Errorf("TargetWPM = %d, want 500", e.state.TargetWPM)
	}
	if e.state.LastDragMs != 0 {
		t.Errorf("LastDragMs = %d, want 0 (stopped nudge leaves drag clock alone)", e.state.LastDragMs)
	}

	// The next Start cruises at the retuned speed.
	e.Start(2000, 0, 0)
	if e.state.CruiseWPM != 500 {
		t.Errorf("CruiseWPM = %d, want 500 after restart", e.state.CruiseWPM)
	}
}

func TestNudgeWPM_Clamps(t *testing.T) {
	e := NewEngine(dragConfig(400), makeWords(100), "b1", 0, nil)

	e.NudgeWPM(1000, 100000)
	if e.state.TargetWPM != DefaultMaxWPM {
		t.Errorf("TargetWPM = %d, want clamped to %d", e.state.TargetWPM, DefaultMaxWPM)
	}
	e.NudgeWPM(1100, -100000)
	if e.state.TargetWPM != DefaultMinWPM {
		t.Errorf("TargetWPM = %d, want clamped to %d", e.state.TargetWPM, DefaultMinWPM)
	}
}

func TestNudgeFontSize(t *testing.T) {
	e := NewEngine(DefaultConfig(), makeWords(100), "b1", 0, nil)

	e.NudgeFontSize(4)
	if got := e.FontSize(); got != DefaultStartFontSize+4 {
		t.Errorf("FontSize = %d, want %d", got, DefaultStartFontSize+4)
	}

	e.NudgeFontSize(-1000)
	if got := e.FontSize(); got != DefaultMinFontSize {
		t.Errorf("FontSize = %d, want clamped to %d", got, DefaultMinFontSize)
	}
	e.NudgeFontSize(1000)
	if got := e.FontSize(); got != DefaultMaxFontSize {
		t.Errorf("FontSize = %d, want clamped to %d", got, DefaultMaxFontSize)
	}
}

func TestSeek(t *testing.T) {
	e := NewEngine(DefaultConfig(), makeWords(50), "b1", 0, nil)
	e.state.AccumulatedMs = 55

	e.Seek(20)
	if e.WordIndex() != 20 {
		t.Errorf("WordIndex = %d, want 20", e.WordIndex())
	}
	if e.state.AccumulatedMs != 0 {
		t.Errorf("AccumulatedMs = %v, want 0 (seek resets the dwell)", e.state.AccumulatedMs)
	}

	e.Seek(-5)
	if e.WordIndex() != 0 {
		t.Errorf("WordIndex = %d, want 0 (clamped)", e.WordIndex())
	}
	e.Seek(1_000_000)
	if e.WordIndex() != 49 {
		t.Errorf("WordIndex = %d, want 49 (clamped)", e.WordIndex())
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/skimr/internal/playback"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	if cfg.Tuning != want.Tuning {
		t.Errorf("Tuning = %+v, want defaults %+v", cfg.Tuning, want.Tuning)
	}
	if cfg.Settings != want.Settings {
		t.Errorf("Settings = %+v, want defaults %+v", cfg.Settings, want.Settings)
	}
	if cfg.Reader != want.Reader {
		t.Errorf("Reader = %+v, want defaults %+v", cfg.Reader, want.Reader)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[playback]
deadman = true
start-wpm = 450
ramp-ms = 800

[reader]
drag-x-scale = 10.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Settings.Deadman {
		t.Error("expected deadman override to apply")
	}
	if cfg.Tuning.StartWPM != 450 {
		t.Errorf("StartWPM = %d, want 450", cfg.Tuning.StartWPM)
	}
	if cfg.Tuning.RampUpMs != 800 {
		t.Errorf("RampUpMs = %d, want 800", cfg.Tuning.RampUpMs)
	}
	if cfg.Reader.DragXScale != 10 {
		t.Errorf("DragXScale = %v, want 10", cfg.Reader.DragXScale)
	}

	// Untouched values keep their defaults.
	if cfg.Settings.Cadence != Default().Settings.Cadence {
		t.Error("cadence default should be untouched")
	}
	if cfg.Tuning.MaxWPM != playback.DefaultMaxWPM {
		t.Errorf("MaxWPM = %d, want default %d", cfg.Tuning.MaxWPM, playback.DefaultMaxWPM)
	}
	if cfg.Reader.FrameMs != Default().Reader.FrameMs {
		t.Error("frame-ms default should be untouched")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[playback\ncadence ="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}

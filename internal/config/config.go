package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/skimr/internal/playback"
)

// Reader holds the terminal frontend tuning: how often frames tick and
// how terminal cell movement translates to the engine's pixel-based drag
// contract.
type Reader struct {
	// FrameMs is the playback frame interval.
	FrameMs int64

	// DragXScale and DragYScale convert cell deltas to pixel deltas.
	// Terminal mice report whole cells; a cell is roughly 8x16 pixels.
	DragXScale float64
	DragYScale float64
}

// Config is the merged runtime configuration.
type Config struct {
	// Tuning holds the playback engine constants.
	Tuning playback.Config

	// Settings holds the reading preferences consulted each frame.
	Settings playback.Settings

	// Reader holds the terminal frontend tuning.
	Reader Reader
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tuning: playback.DefaultConfig(),
		Settings: playback.Settings{
			Cadence: true,
			AutoRev: true,
			Deadman: false,
		},
		Reader: Reader{
			FrameMs:    16,
			DragXScale: 8,
			DragYScale: 16,
		},
	}
}

// FileConfig mirrors the TOML configuration file. Pointer fields
// distinguish "unset" from zero values so the file only overrides what
// it mentions.
type FileConfig struct {
	Playback PlaybackFileConfig `toml:"playback"`
	Reader   ReaderFileConfig   `toml:"reader"`
}

// PlaybackFileConfig maps the [playback] section.
type PlaybackFileConfig struct {
	Cadence           *bool    `toml:"cadence"`
	AutoRev           *bool    `toml:"auto-rev"`
	Deadman           *bool    `toml:"deadman"`
	MinWPM            *int     `toml:"min-wpm"`
	MaxWPM            *int     `toml:"max-wpm"`
	StartWPM          *int     `toml:"start-wpm"`
	MinFontSize       *int     `toml:"min-font-size"`
	MaxFontSize       *int     `toml:"max-font-size"`
	StartFontSize     *int     `toml:"start-font-size"`
	RampMs            *int64   `toml:"ramp-ms"`
	RewindCount       *int     `toml:"rewind-count"`
	AutoRevDelayMs    *int64   `toml:"auto-rev-delay-ms"`
	AutoRevDurationMs *int64   `toml:"auto-rev-duration-ms"`
	WPMPerPixel       *float64 `toml:"wpm-per-pixel"`
	FontPerPixel      *float64 `toml:"font-per-pixel"`
}

// ReaderFileConfig maps the [reader] section.
type ReaderFileConfig struct {
	FrameMs    *int64   `toml:"frame-ms"`
	DragXScale *float64 `toml:"drag-x-scale"`
	DragYScale *float64 `toml:"drag-y-scale"`
}

// Load reads the TOML file at path and merges it over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}

	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	apply(&cfg, fc)
	return cfg, nil
}

// apply overlays the set fields of fc onto cfg.
func apply(cfg *Config, fc FileConfig) {
	p := fc.Playback
	if p.Cadence != nil {
		cfg.Settings.Cadence = *p.Cadence
	}
	if p.AutoRev != nil {
		cfg.Settings.AutoRev = *p.AutoRev
	}
	if p.Deadman != nil {
		cfg.Settings.Deadman = *p.Deadman
	}
	if p.MinWPM != nil {
		cfg.Tuning.MinWPM = *p.MinWPM
	}
	if p.MaxWPM != nil {
		cfg.Tuning.MaxWPM = *p.MaxWPM
	}
	if p.StartWPM != nil {
		cfg.Tuning.StartWPM = *p.StartWPM
	}
	if p.MinFontSize != nil {
		cfg.Tuning.MinFontSize = *p.MinFontSize
	}
	if p.MaxFontSize != nil {
		cfg.Tuning.MaxFontSize = *p.MaxFontSize
	}
	if p.StartFontSize != nil {
		cfg.Tuning.StartFontSize = *p.StartFontSize
	}
	if p.RampMs != nil {
		cfg.Tuning.RampUpMs = *p.RampMs
	}
	if p.RewindCount != nil {
		cfg.Tuning.RewindCount = *p.RewindCount
	}
	if p.AutoRevDelayMs != nil {
		cfg.Tuning.AutoRevDelayMs = *p.AutoRevDelayMs
	}
	if p.AutoRevDurationMs != nil {
		cfg.Tuning.AutoRevDurationMs = *p.AutoRevDurationMs
	}
	if p.WPMPerPixel != nil {
		cfg.Tuning.WPMPerPixel = *p.WPMPerPixel
	}
	if p.FontPerPixel != nil {
		cfg.Tuning.FontPerPixel = *p.FontPerPixel
	}

	r := fc.Reader
	if r.FrameMs != nil {
		cfg.Reader.FrameMs = *r.FrameMs
	}
	if r.DragXScale != nil {
		cfg.Reader.DragXScale = *r.DragXScale
	}
	if r.DragYScale != nil {
		cfg.Reader.DragYScale = *r.DragYScale
	}
}

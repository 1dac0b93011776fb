package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — warm and low-contrast, easy on the eyes for long reads
var (
	Primary   = lipgloss.Color("#E2B714") // Lamp Yellow
	Secondary = lipgloss.Color("#7FB4CA") // Wave Blue
	Accent    = lipgloss.Color("#E46876") // Soft Red
	Success   = lipgloss.Color("#98BB6C") // Spring Green
	Error     = lipgloss.Color("#E82424") // Samurai Red
	Text      = lipgloss.Color("#DCD7BA") // Paper White
	TextDim   = lipgloss.Color("#727169") // Fuji Gray
	BgDark    = lipgloss.Color("#1F1F28") // Ink
	BgCard    = lipgloss.Color("#2A2A37") // Ink Light
	Border    = lipgloss.Color("#54546D") // Violet Gray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Braking = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Reader
var (
	// Word is the flashed word; the focus letter gets Focus instead.
	Word = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Focus = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Reticle = lipgloss.NewStyle().
		Foreground(Border)
)

package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm, editor-adjacent tones
var (
	Primary   = lipgloss.Color("#61AFEF") // Blue
	Secondary = lipgloss.Color("#56B6C2") // Cyan
	Accent    = lipgloss.Color("#E5C07B") // Amber
	Success   = lipgloss.Color("#98C379") // Green
	Error     = lipgloss.Color("#E06C75") // Red
	Text      = lipgloss.Color("#ABB2BF") // Light Gray
	TextDim   = lipgloss.Color("#5C6370") // Gray
	BgDark    = lipgloss.Color("#282C34") // Charcoal
	BgCard    = lipgloss.Color("#21252B") // Dark Charcoal
	Border    = lipgloss.Color("#3E4451") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Score buckets
var (
	BucketHigh = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	BucketMedium = lipgloss.NewStyle().
			Foreground(Accent)

	BucketLow = lipgloss.NewStyle().
			Foreground(Error)
)

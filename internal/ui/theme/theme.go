package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: the platform's terminal-green hacker look.
var (
	Primary   = lipgloss.Color("#22C55E") // Terminal Green
	Secondary = lipgloss.Color("#22D3EE") // Cyan
	Accent    = lipgloss.Color("#FB923C") // Orange
	Success   = lipgloss.Color("#4ADE80") // Light Green
	Error     = lipgloss.Color("#F87171") // Red
	Warning   = lipgloss.Color("#FACC15") // Yellow
	Text      = lipgloss.Color("#CBD5E1") // Slate 300
	TextDim   = lipgloss.Color("#64748B") // Slate 500
	BgDark    = lipgloss.Color("#020617") // Slate 950
	BgCard    = lipgloss.Color("#0F172A") // Slate 900
	Border    = lipgloss.Color("#334155") // Slate 700
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

	Mono = lipgloss.NewStyle().
		Foreground(Secondary)
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

	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	PaneActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Completed = lipgloss.NewStyle().
			Foreground(Success)

	Pending = lipgloss.NewStyle().
		Foreground(Warning).
		Italic(true)

	Warn = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	ErrorBanner = lipgloss.NewStyle().
			Foreground(Error).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(Primary).
			Padding(0, 1)
)

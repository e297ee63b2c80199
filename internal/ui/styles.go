package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#73F59F")
	ColorWarning = lipgloss.Color("#F5A623")
	ColorDanger  = lipgloss.Color("#F56565")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#3F3F46")
	ColorText    = lipgloss.Color("#E4E4E7")

	ColorDir  = lipgloss.Color("#22D3EE") // neon cyan
	ColorFile = lipgloss.Color("#A1A1AA")
	ColorNew  = lipgloss.Color("#FDE047") // yellow
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F1F23")).
			Padding(0, 1)

	AppNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C084FC")). // soft violet
			Bold(true)

	PatternStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Match list
	ListPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ItemSelected = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	DirItemStyle  = lipgloss.NewStyle().Foreground(ColorDir)
	FileItemStyle = lipgloss.NewStyle().Foreground(ColorFile)

	DeletedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#EF4444")).
				Strikethrough(true)

	DeletedBadge = lipgloss.NewStyle().
			Background(ColorDanger).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)

	// Status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	TypeBadge = lipgloss.NewStyle().
			Background(ColorNew).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

// FormatCount formats a counter with thousands separators
func FormatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return s
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// FormatElapsed formats a duration the way search summaries print it
func FormatElapsed(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return d.Truncate(time.Second).String()
	case d >= time.Second:
		return d.Truncate(10 * time.Millisecond).String()
	default:
		return d.Truncate(time.Microsecond).String()
	}
}

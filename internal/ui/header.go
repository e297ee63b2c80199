package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/disksearch/internal/core"
)

// Header displays the query and search progress
type Header struct {
	width   int
	root    string
	pattern string
	state   core.SessionState
	spinner string
	matches int
	deleted int
}

// NewHeader creates a new header component
func NewHeader(root, pattern string) Header {
	return Header{root: root, pattern: pattern}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// SetState updates the session snapshot and spinner frame shown while searching
func (h *Header) SetState(state core.SessionState, spinner string) {
	h.state = state
	h.spinner = spinner
}

// SetCounts sets the match totals shown once the search is complete
func (h *Header) SetCounts(matches, deleted int) {
	h.matches = matches
	h.deleted = deleted
}

// View renders the header
func (h Header) View() string {
	appName := AppNameStyle.Render("DISKSEARCH")
	pattern := PatternStyle.Render(h.pattern)
	if h.pattern == "" {
		pattern = PatternStyle.Render("*")
	}
	root := StatsStyle.Render(h.root)

	var stats string
	switch h.state.Phase {
	case core.PhaseSearching:
		p := h.state.Progress
		stats = StatsStyle.Render(fmt.Sprintf("%s %s  %s dirs  %s matches  %s",
			h.spinner,
			h.state.Phase,
			FormatCount(p.DirsScanned),
			FormatCount(p.Matches),
			FormatElapsed(h.state.Elapsed()),
		))
	case core.PhaseComplete:
		text := fmt.Sprintf("found %s after %s", FormatCount(int64(h.matches)), FormatElapsed(h.state.Elapsed()))
		if h.deleted > 0 {
			text += fmt.Sprintf("  (%d deleted)", h.deleted)
		}
		stats = lipgloss.NewStyle().Foreground(ColorSuccess).Render(text)
	}

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")
	left := appName + sep + pattern + " " + root

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(stats) - 2
	if gap < 1 {
		// Narrow terminal: drop the root first
		left = appName + sep + pattern
		gap = h.width - lipgloss.Width(left) - lipgloss.Width(stats) - 2
	}
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + stats
	return HeaderStyle.MaxHeight(1).Render(line)
}

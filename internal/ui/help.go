package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 12 // Width for key column in help text

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay() HelpOverlay {
	return HelpOverlay{}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (h *HelpOverlay) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		MarginTop(1)

	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	var content strings.Builder

	content.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("NAVIGATION"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(HelpKey, descStyle, "↑↓/jk", "Move selection"))
	content.WriteString(formatHelpLine(HelpKey, descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(HelpKey, descStyle, "g/G", "Jump to top/bottom"))

	content.WriteString(sectionStyle.Render("ACTIONS"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(HelpKey, descStyle, "o/Enter", "Open containing folder"))
	content.WriteString(formatHelpLine(HelpKey, descStyle, "r", "Search again"))

	content.WriteString(sectionStyle.Render("OTHER"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(HelpKey, descStyle, "?", "Toggle this help"))
	content.WriteString(formatHelpLine(HelpKey, descStyle, "q", "Quit"))

	content.WriteString(sectionStyle.Render("LEGEND"))
	content.WriteString("\n")
	content.WriteString(formatStyleLine(DirItemStyle, "Directory"))
	content.WriteString(formatStyleLine(FileItemStyle, "File"))
	content.WriteString(strings.TrimSuffix(formatStyleLine(DeletedItemStyle, "Deleted since search"), "\n"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// formatStyleLine shows a sample rendered in style next to its meaning
func formatStyleLine(style lipgloss.Style, desc string) string {
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	return style.Width(helpKeyColumnWidth).Render("sample") + descStyle.Render(desc) + "\n"
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int, keys KeyMap) string {
	sepStyle := HelpStyle

	var parts []string
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, HelpKey.Render(h.Key)+sepStyle.Render(" "+h.Desc))
	}

	bar := strings.Join(parts, sepStyle.Render("  |  "))

	return HelpStyle.Width(width).MaxHeight(1).Render(bar)
}

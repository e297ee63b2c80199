package ui

import (
	"path/filepath"
	"strings"

	"github.com/lumipallolabs/disksearch/internal/model"
)

// ListPanel displays the matches as a scrollable list
type ListPanel struct {
	matches []*model.Match
	root    string
	cursor  int
	offset  int // scroll offset
	width   int
	height  int
}

// NewListPanel creates a list whose entries are shown relative to root
func NewListPanel(root string) ListPanel {
	return ListPanel{root: root}
}

// SetMatches replaces the list contents and resets the cursor
func (l *ListPanel) SetMatches(matches []*model.Match) {
	l.matches = matches
	l.cursor = 0
	l.offset = 0
}

// Len returns the number of matches
func (l ListPanel) Len() int {
	return len(l.matches)
}

// Deleted returns how many matches were flagged as deleted
func (l ListPanel) Deleted() int {
	n := 0
	for _, m := range l.matches {
		if m.Deleted {
			n++
		}
	}
	return n
}

// MarkDeleted flags matches at or below path
func (l *ListPanel) MarkDeleted(path string) int {
	return model.MarkDeleted(l.matches, path)
}

// SetSize sets the panel dimensions
func (l *ListPanel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.ensureVisible()
}

// Selected returns the currently selected match
func (l ListPanel) Selected() *model.Match {
	if l.cursor >= 0 && l.cursor < len(l.matches) {
		return l.matches[l.cursor]
	}
	return nil
}

// MoveUp moves cursor up
func (l *ListPanel) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// MoveDown moves cursor down
func (l *ListPanel) MoveDown() {
	if l.cursor < len(l.matches)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// PageUp moves cursor up by one page
func (l *ListPanel) PageUp() {
	l.cursor = max(l.cursor-l.pageSize(), 0)
	l.ensureVisible()
}

// PageDown moves cursor down by one page
func (l *ListPanel) PageDown() {
	l.cursor = max(min(l.cursor+l.pageSize(), len(l.matches)-1), 0)
	l.ensureVisible()
}

// GoToTop moves to first item
func (l *ListPanel) GoToTop() {
	l.cursor = 0
	l.offset = 0
}

// GoToBottom moves to last item
func (l *ListPanel) GoToBottom() {
	l.cursor = max(len(l.matches)-1, 0)
	l.ensureVisible()
}

func (l ListPanel) pageSize() int {
	return max(l.height-2, 1)
}

func (l *ListPanel) ensureVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	maxVisible := l.pageSize()
	if l.cursor >= l.offset+maxVisible {
		l.offset = l.cursor - maxVisible + 1
	}
}

// display returns the path shown for m, relative to the search root when possible
func (l ListPanel) display(m *model.Match) string {
	if rel, err := filepath.Rel(l.root, m.Path); err == nil && !strings.HasPrefix(rel, "..") {
		if m.IsDir() {
			return rel + string(filepath.Separator)
		}
		return rel
	}
	return m.Path
}

// View renders the list
func (l ListPanel) View() string {
	style := ListPanelStyle.Width(l.width).Height(l.height).BorderForeground(ColorPrimary)
	if len(l.matches) == 0 {
		return style.Render(StatusStyle.Render("No matches"))
	}

	var lines []string
	maxW := max(l.width-2, 1)
	for i := l.offset; i < len(l.matches) && len(lines) < l.pageSize(); i++ {
		m := l.matches[i]
		line := l.display(m)

		var itemStyle = FileItemStyle
		switch {
		case i == l.cursor:
			itemStyle = ItemSelected.Width(maxW)
			if m.Deleted {
				itemStyle = itemStyle.Strikethrough(true)
			}
		case m.Deleted:
			itemStyle = DeletedItemStyle
		case m.IsDir():
			itemStyle = DirItemStyle
		}
		lines = append(lines, itemStyle.MaxWidth(maxW).Render(line))
	}

	return style.Render(strings.Join(lines, "\n"))
}

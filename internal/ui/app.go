package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/disksearch/internal/core"
	"github.com/lumipallolabs/disksearch/internal/logging"
)

// eventMsg carries one controller event together with the channel it came
// from, so Update can keep listening on the same channel
type eventMsg struct {
	event core.Event
	ch    <-chan core.Event
}

// App is the main application model
type App struct {
	ctrl *core.Controller

	// Components
	header  Header
	list    ListPanel
	help    HelpOverlay
	spinner spinner.Model
	keys    KeyMap

	// UI state
	searching bool
	status    string
	err       error

	// Dimensions
	width  int
	height int
}

// NewApp creates the browser for ctrl; the search starts on Init
func NewApp(ctrl *core.Controller) App {
	state := ctrl.State()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return App{
		ctrl:      ctrl,
		header:    NewHeader(state.Root, state.Pattern),
		list:      NewListPanel(state.Root),
		help:      NewHelpOverlay(),
		spinner:   sp,
		keys:      DefaultKeyMap(),
		searching: true,
	}
}

// Run starts the full-screen browser and blocks until the user quits
func Run(ctrl *core.Controller) error {
	p := tea.NewProgram(NewApp(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("DISKSEARCH"),
		a.spinner.Tick,
		listen(a.ctrl.StartSearch()),
	)
}

// listen returns a command that waits for the next event on ch
func listen(ch <-chan core.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil // Channel closed
		}
		return eventMsg{event: ev, ch: ch}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.searching {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.header.SetState(a.ctrl.State(), a.spinner.View())
		return a, cmd

	case eventMsg:
		cmd := a.handleEvent(msg.event)
		return a, tea.Batch(cmd, listen(msg.ch))
	}

	return a, nil
}

// handleEvent applies a controller event to the model
func (a *App) handleEvent(ev core.Event) tea.Cmd {
	switch ev := ev.(type) {
	case core.SearchStartedEvent:
		a.searching = true
		a.err = nil
		a.status = ""

	case core.SearchCompletedEvent:
		a.searching = false
		a.header.SetState(a.ctrl.State(), "")
		if ev.Err != nil {
			a.err = ev.Err
			return nil
		}
		a.list.SetMatches(a.ctrl.Matches())
		a.header.SetCounts(a.list.Len(), 0)
		if ev.Result.HasDiff && !ev.Result.Diff.Empty() {
			a.status = fmt.Sprintf("since last search: +%d -%d", len(ev.Result.Diff.Added), len(ev.Result.Diff.Removed))
		}

		ch, err := a.ctrl.StartWatching()
		if err != nil {
			logging.Debug.Printf("[UI] Failed to start watcher: %v", err)
			return nil
		}
		return listen(ch)

	case core.MatchDeletedEvent:
		a.list.MarkDeleted(ev.Path)
		a.header.SetCounts(a.list.Len(), a.list.Deleted())
		a.status = "deleted: " + ev.Path

	case core.MatchCreatedEvent:
		a.status = "new match (press r to refresh): " + ev.Path

	case core.ErrorEvent:
		a.err = ev.Err
	}
	return nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Back) {
			a.help.SetVisible(false)
		}
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit), key.Matches(msg, a.keys.Back):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.Up):
		a.list.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.list.MoveDown()
	case key.Matches(msg, a.keys.PageUp):
		a.list.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.list.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.list.GoToTop()
	case key.Matches(msg, a.keys.Bottom):
		a.list.GoToBottom()

	case key.Matches(msg, a.keys.Open):
		a.openInExplorer()

	case key.Matches(msg, a.keys.Rescan):
		if a.searching {
			return a, nil
		}
		a.searching = true
		return a, tea.Batch(a.spinner.Tick, listen(a.ctrl.StartSearch()))
	}
	return a, nil
}

// openInExplorer opens the folder containing the selected match
func (a *App) openInExplorer() {
	m := a.list.Selected()
	if m == nil {
		return
	}

	logging.Debug.Printf("openInExplorer: revealing %s", m.Path)
	if err := revealInFileManager(m.Path); err != nil {
		logging.Debug.Printf("openInExplorer: error: %v", err)
		a.status = "could not open " + filepath.Dir(m.Path)
	}
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	const headerHeight, statusHeight, helpBarHeight = 1, 1, 1

	a.header.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)

	listHeight := max(a.height-headerHeight-statusHeight-helpBarHeight-2, 1)
	a.list.SetSize(max(a.width-2, 10), listHeight)
}

// statusLine shows the selected match's type, or the latest notice
func (a App) statusLine() string {
	if a.err != nil {
		return StatusStyle.Render(ErrorStyle.Render("Error: " + a.err.Error()))
	}
	var parts []string
	if m := a.list.Selected(); m != nil {
		if t := m.DetectType(); t != "" {
			parts = append(parts, TypeBadge.Render(t))
		}
		parts = append(parts, m.Path)
	}
	if a.status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorWarning).Render(a.status))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
	return StatusStyle.Width(a.width).MaxWidth(a.width).MaxHeight(1).Render(line)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 {
		return "Initializing..."
	}
	if a.help.IsVisible() {
		return a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(),
		a.list.View(),
		a.statusLine(),
		HelpBar(a.width, a.keys),
	)
}

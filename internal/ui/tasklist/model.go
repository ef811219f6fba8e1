package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/task-planner/internal/controller"
	"github.com/nhle/task-planner/internal/keys"
	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/theme"
	"github.com/nhle/task-planner/internal/ui"
	helpview "github.com/nhle/task-planner/internal/ui/help"
)

// Model is the Bubble Tea model of the task list screen. It runs until the
// user picks an action, records it, and quits.
type Model struct {
	list     list.Model
	keys     *keys.KeyMap
	help     help.Model
	overlay  helpview.Model
	layout   ui.Layout
	title    string
	notice   string
	showHelp bool
	action   controller.Action
	quitting bool
}

// NewModel builds the screen for tasks with the cursor at index.
func NewModel(
	tasks []model.Task,
	index int,
	title string,
	notice string,
	today model.Date,
	k *keys.KeyMap,
	width, height int,
) Model {
	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task}
	}

	layout := ui.NewLayout(width, height)
	l := list.New(items, ItemDelegate{today: today}, width, layout.ContentHeight())
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	if index >= 0 && index < len(items) {
		l.Select(index)
	}

	h := help.New()
	h.Width = width

	return Model{
		list:    l,
		keys:    k,
		help:    h,
		overlay: helpview.New(k, width, layout.ContentHeight()),
		layout:  layout,
		title:   title,
		notice:  notice,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Any key dismisses a pending notice.
		m.notice = ""

		switch {
		case key.Matches(msg, m.keys.Add):
			return m.finish(controller.ActionAdd)
		case key.Matches(msg, m.keys.Delete):
			return m.finish(controller.ActionDelete)
		case key.Matches(msg, m.keys.Edit):
			return m.finish(controller.ActionEdit)
		case key.Matches(msg, m.keys.Quit):
			return m.finish(controller.ActionQuit)
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) finish(action controller.Action) (tea.Model, tea.Cmd) {
	m.action = action
	m.quitting = true
	return m, tea.Quit
}

// View renders header, list and status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.layout.RenderHeader(m.title, m.summary())

	var content string
	switch {
	case m.showHelp:
		content = m.overlay.View()
	case len(m.list.Items()) == 0:
		content = m.renderEmptyState()
	default:
		content = m.list.View()
	}

	statusBar := m.layout.RenderStatusBar(m.help.ShortHelpView(m.keys.ShortHelp()), m.notice)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderEmptyState shows guidance text when there are no tasks.
func (m Model) renderEmptyState() string {
	return theme.HelpStyle.
		Width(m.layout.Width).
		Height(m.layout.ContentHeight()).
		Align(lipgloss.Center, lipgloss.Center).
		Render("No tasks yet.\n\nPress n to add one.")
}

func (m Model) summary() string {
	switch n := len(m.list.Items()); n {
	case 1:
		return "1 task"
	default:
		return fmt.Sprintf("%d tasks", n)
	}
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	m.help.Width = width
	m.overlay.SetSize(width, m.layout.ContentHeight())
	m.list.SetSize(width, m.layout.ContentHeight())
}

// Action returns the action the user picked, or ActionNone.
func (m Model) Action() controller.Action {
	return m.action
}

// Index returns the cursor position.
func (m Model) Index() int {
	return m.list.Index()
}

// selected returns the task under the cursor, if any.
func (m Model) selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

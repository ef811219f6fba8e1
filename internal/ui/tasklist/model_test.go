package tasklist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-planner/internal/controller"
	"github.com/nhle/task-planner/internal/keys"
	"github.com/nhle/task-planner/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Name: "Write report", Category: "Work", Deadline: model.NewDate(2024, 5, 1)},
		{ID: 2, Name: "Buy milk", Category: "Home", Deadline: model.NewDate(2024, 5, 2)},
		{ID: 3, Name: "Call Bob", Category: "Personal", Deadline: model.NewDate(2024, 5, 3)},
	}
}

func newTestModel(tasks []model.Task, index int) Model {
	return NewModel(tasks, index, "Task Planner", "", model.NewDate(2024, 5, 2), keys.DefaultKeyMap(), 80, 24)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "Update returned %T, want Model", updated)
	return next, cmd
}

func TestActionKeysQuitWithAction(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want controller.Action
	}{
		{"n adds", runeKey("n"), controller.ActionAdd},
		{"a adds", runeKey("a"), controller.ActionAdd},
		{"d deletes", runeKey("d"), controller.ActionDelete},
		{"x deletes", runeKey("x"), controller.ActionDelete},
		{"e edits", runeKey("e"), controller.ActionEdit},
		{"enter edits", tea.KeyMsg{Type: tea.KeyEnter}, controller.ActionEdit},
		{"q quits", runeKey("q"), controller.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, controller.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := send(t, newTestModel(sampleTasks(), 0), tt.msg)
			assert.Equal(t, tt.want, m.Action())
			require.NotNil(t, cmd, "expected a quit command")
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View(), "a finished screen renders nothing")
		})
	}
}

func TestNavigationMovesCursor(t *testing.T) {
	m := newTestModel(sampleTasks(), 0)

	m, _ = send(t, m, runeKey("j"))
	m, _ = send(t, m, runeKey("j"))
	require.Equal(t, 2, m.Index())

	m, _ = send(t, m, runeKey("k"))
	selected, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, int64(2), selected.ID)
	assert.Equal(t, controller.ActionNone, m.Action())
}

func TestInitialIndexIsSelected(t *testing.T) {
	m := newTestModel(sampleTasks(), 1)
	selected, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Buy milk", selected.Name)
}

func TestEmptyListHasNoSelection(t *testing.T) {
	m := newTestModel(nil, 0)
	_, ok := m.selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No tasks yet.")
	assert.Contains(t, m.View(), "0 tasks")
}

func TestViewRendersDisplayString(t *testing.T) {
	out := newTestModel(sampleTasks(), 0).View()
	for _, want := range []string{"Write report", "(Work)", "Due: 2024-05-01", "3 tasks"} {
		assert.Contains(t, out, want)
	}
}

func TestNoticeShownUntilNextKey(t *testing.T) {
	m := NewModel(sampleTasks(), 0, "Task Planner", "Could not add task", model.Date{}, keys.DefaultKeyMap(), 80, 24)
	require.Contains(t, m.View(), "Could not add task")

	m, _ = send(t, m, runeKey("j"))
	assert.NotContains(t, m.View(), "Could not add task")
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(sampleTasks(), 0)
	m, cmd := send(t, m, runeKey("?"))
	assert.Nil(t, cmd, "help toggle should not quit")
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = send(t, m, runeKey("?"))
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestWindowResize(t *testing.T) {
	m, _ := send(t, newTestModel(sampleTasks(), 0), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.layout.Width)
	assert.Equal(t, 40, m.layout.Height)
}

func TestViewReplaceClampsCursor(t *testing.T) {
	v := NewView("Task Planner")
	v.ReplaceDisplayedTasks(sampleTasks())
	v.selectIndex(2)

	v.ReplaceDisplayedTasks(sampleTasks()[:2])
	selected, ok := v.CurrentSelection()
	require.True(t, ok)
	assert.Equal(t, int64(2), selected.ID)

	v.ReplaceDisplayedTasks(nil)
	_, ok = v.CurrentSelection()
	assert.False(t, ok)
}

func TestViewReplaceCopiesTasks(t *testing.T) {
	tasks := sampleTasks()
	v := NewView("Task Planner")
	v.ReplaceDisplayedTasks(tasks)
	tasks[0].Name = "changed"

	selected, _ := v.CurrentSelection()
	assert.Equal(t, "Write report", selected.Name, "view shares the caller's slice")
}

func TestAbsorbKeepsCursorAndDropsNotice(t *testing.T) {
	v := NewView("Task Planner")
	v.ReplaceDisplayedTasks(sampleTasks())
	v.ShowNotice("hello")

	m := v.screen()
	require.Equal(t, "hello", m.notice)
	m, _ = send(t, m, runeKey("j"))
	v.absorb(m)

	assert.Empty(t, v.notice)
	selected, _ := v.CurrentSelection()
	assert.Equal(t, int64(2), selected.ID)
}

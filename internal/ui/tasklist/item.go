package tasklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Name }

// ItemDelegate draws one task per line.
type ItemDelegate struct {
	// today decides which deadlines are drawn as overdue.
	today model.Date
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws "Name (Category) - Due: YYYY-MM-DD" with the category and
// deadline styled.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	task := ti.Task

	deadlineStyle := theme.DeadlineStyle
	if !d.today.IsZero() && task.Deadline.Before(d.today) {
		deadlineStyle = theme.OverdueStyle
	}

	line := fmt.Sprintf(
		"%s %s - Due: %s",
		task.Name,
		theme.CategoryStyle.Render("("+task.Category+")"),
		deadlineStyle.Render(task.Deadline.String()),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

package tasklist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/task-planner/internal/controller"
	"github.com/nhle/task-planner/internal/keys"
	"github.com/nhle/task-planner/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// View is the task list the controller drives. It keeps the displayed
// tasks and the cursor between screen runs so the selection survives the
// dialogs opened in between.
type View struct {
	mu      sync.Mutex
	tasks   []model.Task
	index   int
	notice  string
	title   string
	keys    *keys.KeyMap
	width   int
	height  int
	opts    []tea.ProgramOption
	nowFunc func() time.Time
}

var _ controller.View = (*View)(nil)

// Option customizes a View.
type Option func(*View)

// WithProgramOptions adds Bubble Tea program options, e.g. tea.WithInput
// in tests.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(v *View) {
		v.opts = append(v.opts, opts...)
	}
}

// WithClock replaces the clock used to mark overdue deadlines.
func WithClock(now func() time.Time) Option {
	return func(v *View) {
		v.nowFunc = now
	}
}

// NewView creates an empty task list titled title.
func NewView(title string, opts ...Option) *View {
	v := &View{
		title:   title,
		keys:    keys.DefaultKeyMap(),
		width:   defaultWidth,
		height:  defaultHeight,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ReplaceDisplayedTasks swaps the displayed entries for tasks, in order.
// The cursor stays on the same row when it still exists.
func (v *View) ReplaceDisplayedTasks(tasks []model.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.tasks = append([]model.Task(nil), tasks...)
	switch {
	case len(v.tasks) == 0:
		v.index = 0
	case v.index >= len(v.tasks):
		v.index = len(v.tasks) - 1
	}
}

// CurrentSelection returns the task under the cursor, or false when the
// list is empty.
func (v *View) CurrentSelection() (model.Task, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.index < 0 || v.index >= len(v.tasks) {
		return model.Task{}, false
	}
	return v.tasks[v.index], true
}

// ShowNotice queues a message for the status bar of the next screen run.
func (v *View) ShowNotice(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = message
}

// selectIndex moves the cursor to index.
func (v *View) selectIndex(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index >= 0 && index < len(v.tasks) {
		v.index = index
	}
}

// Next shows the list until the user picks an action and returns it.
func (v *View) Next(ctx context.Context) (controller.Action, error) {
	m := v.screen()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, v.opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return controller.ActionQuit, ctx.Err()
		}
		return controller.ActionNone, fmt.Errorf("run task list: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return controller.ActionNone, fmt.Errorf("run task list: unexpected model %T", final)
	}
	v.absorb(result)
	return result.Action(), nil
}

// screen builds a fresh Bubble Tea model from the current state.
func (v *View) screen() Model {
	v.mu.Lock()
	defer v.mu.Unlock()

	return NewModel(
		v.tasks,
		v.index,
		v.title,
		v.notice,
		model.DateOf(v.nowFunc()),
		v.keys,
		v.width,
		v.height,
	)
}

// absorb keeps the cursor and size of a finished run. A notice is shown
// once.
func (v *View) absorb(m Model) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.index = m.Index()
	v.notice = ""
	if m.layout.Width > 0 && m.layout.Height > 0 {
		v.width = m.layout.Width
		v.height = m.layout.Height
	}
}

// Package controller wires list-screen actions to store calls. Every action
// either stops with a notice or makes one store call followed by a full
// reload of the view.
package controller

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/store"
)

// NoSelectionNotice is shown when delete or edit is requested with an empty selection.
const NoSelectionNotice = "No task selected."

// Action is a user intent raised by the list screen.
type Action int

const (
	ActionNone Action = iota
	ActionAdd
	ActionDelete
	ActionEdit
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDelete:
		return "delete"
	case ActionEdit:
		return "edit"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// View is the presentation side: a displayed task sequence, an optional
// selection and a source of user actions.
type View interface {
	// ReplaceDisplayedTasks clears the list and shows tasks in the given order.
	ReplaceDisplayedTasks(tasks []model.Task)

	// CurrentSelection returns the highlighted task, if any.
	CurrentSelection() (model.Task, bool)

	// ShowNotice sets a status line message for the next render.
	ShowNotice(message string)

	// Next blocks until the user requests an action.
	Next(ctx context.Context) (Action, error)
}

// Dialogs are the modal prompts used by the add and edit flows.
type Dialogs interface {
	// PromptTask asks for the four task fields, pre-filled with defaults.
	// ok is false when the user cancelled.
	PromptTask(ctx context.Context, title string, defaults model.TaskFields) (fields model.TaskFields, ok bool, err error)

	// Notice shows a message and waits for the user to dismiss it.
	Notice(ctx context.Context, message string) error
}

// Controller mediates between the store, the view and the dialogs. It
// keeps no task state of its own.
type Controller struct {
	store   store.Store
	view    View
	dialogs Dialogs
	logger  log.FieldLogger
}

// New creates a Controller.
func New(s store.Store, v View, d Dialogs, logger log.FieldLogger) *Controller {
	return &Controller{
		store:   s,
		view:    v,
		dialogs: d,
		logger:  logger,
	}
}

// Run loads the tasks and then handles actions until the user quits or ctx
// is cancelled. It returns an error only when the terminal or a dialog fails.
func (c *Controller) Run(ctx context.Context) error {
	c.Reload(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		action, err := c.view.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading next action: %w", err)
		}
		if action == ActionQuit {
			return nil
		}

		if err := c.Handle(ctx, action); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Handle dispatches a single action.
func (c *Controller) Handle(ctx context.Context, action Action) error {
	c.logger.WithField("action", action.String()).Debug("handling action")

	switch action {
	case ActionAdd:
		return c.Add(ctx)
	case ActionDelete:
		return c.Delete(ctx)
	case ActionEdit:
		return c.Edit(ctx)
	default:
		return nil
	}
}

// Reload replaces the displayed tasks with the store's current rows. A
// failed list shows an empty view and a notice.
func (c *Controller) Reload(ctx context.Context) {
	tasks, err := c.store.List(ctx)
	c.view.ReplaceDisplayedTasks(tasks)
	if err != nil {
		c.view.ShowNotice("Could not load tasks; see the log for details.")
	}
}

// Add prompts for a new task and stores it.
func (c *Controller) Add(ctx context.Context) error {
	task, ok, err := c.promptTask(ctx, "New Task", model.TaskFields{}, 0)
	if err != nil || !ok {
		return err
	}

	err = c.store.Add(ctx, task)
	c.afterMutation(ctx, "add", err)
	return nil
}

// Delete removes the selected task.
func (c *Controller) Delete(ctx context.Context) error {
	selected, ok := c.view.CurrentSelection()
	if !ok {
		return c.notice(ctx, NoSelectionNotice)
	}

	err := c.store.Delete(ctx, selected.ID)
	c.afterMutation(ctx, "delete", err)
	return nil
}

// Edit prompts with the selected task's values and stores the result under
// the same ID.
func (c *Controller) Edit(ctx context.Context) error {
	selected, ok := c.view.CurrentSelection()
	if !ok {
		return c.notice(ctx, NoSelectionNotice)
	}

	task, ok, err := c.promptTask(ctx, "Edit Task", selected.Fields(), selected.ID)
	if err != nil || !ok {
		return err
	}

	err = c.store.Update(ctx, task)
	c.afterMutation(ctx, "update", err)
	return nil
}

// promptTask runs the task dialog and parses the result. ok is false when
// the user cancelled or the deadline was rejected; in the latter case a
// notice has been shown.
func (c *Controller) promptTask(
	ctx context.Context,
	title string,
	defaults model.TaskFields,
	id int64,
) (model.Task, bool, error) {
	fields, ok, err := c.dialogs.PromptTask(ctx, title, defaults)
	if err != nil {
		return model.Task{}, false, fmt.Errorf("prompting for task: %w", err)
	}
	if !ok {
		return model.Task{}, false, nil
	}

	task, err := fields.Task(id)
	if errors.Is(err, model.ErrInvalidDeadline) {
		return model.Task{}, false, c.notice(ctx, fmt.Sprintf("Invalid deadline %q: use YYYY-MM-DD.", fields.Deadline))
	}
	if err != nil {
		return model.Task{}, false, err
	}
	return task, true, nil
}

// afterMutation reloads unconditionally and surfaces a store failure on
// the status line.
func (c *Controller) afterMutation(ctx context.Context, verb string, err error) {
	c.Reload(ctx)
	if err != nil {
		c.view.ShowNotice(fmt.Sprintf("Could not %s task: %v", verb, err))
	}
}

func (c *Controller) notice(ctx context.Context, message string) error {
	if err := c.dialogs.Notice(ctx, message); err != nil {
		return fmt.Errorf("showing notice: %w", err)
	}
	return nil
}

// Package taskform holds the modal dialogs of the task planner: the task
// prompt used by add and edit, the notice box and the password prompt.
package taskform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/task-planner/internal/controller"
	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/theme"
)

// Field titles, in prompt order.
const (
	TitleName        = "Task Name"
	TitleDescription = "Task Description"
	TitleCategory    = "Task Category"
	TitleDeadline    = "Task Deadline (YYYY-MM-DD)"
)

// Dialogs runs each prompt as its own huh form.
type Dialogs struct {
	opts []tea.ProgramOption
}

var _ controller.Dialogs = (*Dialogs)(nil)

// New creates Dialogs. opts are passed to every form's tea program.
func New(opts ...tea.ProgramOption) *Dialogs {
	return &Dialogs{opts: opts}
}

// PromptTask asks for the four task fields, pre-filled with defaults. The
// form does not submit until every field is filled in and the deadline
// parses. ok is false when the user pressed esc or ctrl+c.
func (d *Dialogs) PromptTask(ctx context.Context, title string, defaults model.TaskFields) (model.TaskFields, bool, error) {
	fields := defaults

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title(TitleName).
				Value(&fields.Name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title(TitleDescription).
				Value(&fields.Description).
				Validate(validateRequired("Description")),
			huh.NewInput().
				Title(TitleCategory).
				Placeholder("e.g. Work").
				Value(&fields.Category).
				Validate(validateRequired("Category")),
			huh.NewInput().
				Title(TitleDeadline).
				Placeholder(model.DateLayout).
				Value(&fields.Deadline).
				Validate(validateDeadline),
		),
	)

	ok, err := d.run(ctx, form)
	if err != nil || !ok {
		return model.TaskFields{}, false, err
	}
	return fields, true, nil
}

// Notice shows message until the user confirms it.
func (d *Dialogs) Notice(ctx context.Context, message string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Task Planner").
				Description(message).
				Next(true).
				NextLabel("OK"),
		),
	)

	_, err := d.run(ctx, form)
	return err
}

// PromptSecret asks for a value without echoing it. ok is false when the
// user cancelled.
func (d *Dialogs) PromptSecret(ctx context.Context, title string) (string, bool, error) {
	var secret string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&secret).
				Validate(validateRequired("Password")),
		),
	)

	ok, err := d.run(ctx, form)
	if err != nil || !ok {
		return "", false, err
	}
	return secret, true, nil
}

// run shows form and reports whether it was submitted.
func (d *Dialogs) run(ctx context.Context, form *huh.Form) (bool, error) {
	err := form.
		WithTheme(theme.FormTheme()).
		WithKeyMap(keyMap()).
		WithShowHelp(true).
		WithProgramOptions(d.opts...).
		RunWithContext(ctx)

	switch {
	case err == nil:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case errors.Is(err, huh.ErrUserAborted):
		return false, nil
	default:
		return false, fmt.Errorf("running dialog: %w", err)
	}
}

// keyMap lets esc cancel a dialog as well as ctrl+c.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDeadline(s string) error {
	if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date, use %s", model.DateLayout)
	}
	return nil
}

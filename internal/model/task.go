package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDeadline is returned when deadline text is not an ISO calendar date.
var ErrInvalidDeadline = errors.New("invalid deadline")

// Task is a single planner entry. It mirrors one row of the tasks table.
type Task struct {
	// ID is the store-assigned key. Zero means the task has not been saved.
	ID int64 `json:"id" db:"id"`

	// Name is the short label shown in the list.
	Name string `json:"name" db:"name"`

	// Description is free text.
	Description string `json:"description" db:"description"`

	// Category is an uncontrolled tag such as "Work" or "Home".
	Category string `json:"category" db:"category"`

	// Deadline is the due date, without a time component.
	Deadline Date `json:"deadline" db:"deadline"`
}

// String renders the task the way the list shows it.
func (t Task) String() string {
	return fmt.Sprintf("%s (%s) - Due: %s", t.Name, t.Category, t.Deadline)
}

// Fields returns the task's values as form text, used to pre-fill the edit dialog.
func (t Task) Fields() TaskFields {
	return TaskFields{
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Deadline:    t.Deadline.String(),
	}
}

// TaskFields holds the raw text a user enters for a task.
type TaskFields struct {
	Name        string
	Description string
	Category    string
	Deadline    string
}

// Task parses the deadline and builds a Task carrying the given id.
func (f TaskFields) Task(id int64) (Task, error) {
	deadline, err := ParseDate(strings.TrimSpace(f.Deadline))
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Deadline:    deadline,
	}, nil
}

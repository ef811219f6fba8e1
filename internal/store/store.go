package store

import (
	"context"

	"github.com/nhle/task-planner/internal/model"
)

// Store is the persistence gateway for tasks. Every call runs exactly one
// statement; there are no transactions spanning calls.
type Store interface {
	// List returns every task in the database's natural row order.
	List(ctx context.Context) ([]model.Task, error)

	// Add inserts a task. The task's ID is ignored; the store assigns one.
	Add(ctx context.Context, task model.Task) error

	// Update replaces the mutable fields of the task with task.ID.
	// An unknown ID is a no-op.
	Update(ctx context.Context, task model.Task) error

	// Delete removes the task with the given ID. An unknown ID is a no-op.
	Delete(ctx context.Context, id int64) error
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

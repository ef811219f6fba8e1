package store

import (
	"context"
	"sync"

	"github.com/nhle/task-planner/internal/model"
)

// MemoryStore is an in-process Store. Nothing survives the process; it is
// meant for tests and throwaway sessions.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// List returns a copy of the tasks in insertion order.
func (m *MemoryStore) List(_ context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// Add appends the task under the next sequential ID.
func (m *MemoryStore) Add(_ context.Context, task model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++
	m.tasks = append(m.tasks, task)
	return nil
}

// Update replaces the task with the same ID, if any.
func (m *MemoryStore) Update(_ context.Context, task model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = task
			return nil
		}
	}
	return nil
}

// Delete removes the task with the given ID, if any.
func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Package app assembles the task planner: it opens the configured store
// and connects it to the list screen and the dialogs through the
// controller.
package app

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/nhle/task-planner/internal/controller"
	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/store"
	"github.com/nhle/task-planner/internal/ui/taskform"
	"github.com/nhle/task-planner/internal/ui/tasklist"
)

// App owns the store handle and the controller for one session.
type App struct {
	store      store.Store
	closer     io.Closer
	controller *controller.Controller
	logger     log.FieldLogger
}

// New opens the store described by cfg and builds the UI around it.
// opts are passed to every Bubble Tea program the UI starts.
func New(ctx context.Context, cfg *model.AppConfig, logger log.FieldLogger, opts ...tea.ProgramOption) (*App, error) {
	s, closer, err := OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	view := tasklist.NewView(cfg.Display.Title, tasklist.WithProgramOptions(opts...))
	dialogs := taskform.New(opts...)

	return &App{
		store:      s,
		closer:     closer,
		controller: controller.New(s, view, dialogs, logger),
		logger:     logger,
	}, nil
}

// OpenStore returns the Store for db. SQL stores get their tasks table
// created when missing. The closer releases the database handle.
func OpenStore(ctx context.Context, db model.DatabaseConfig, logger log.FieldLogger) (store.Store, io.Closer, error) {
	if db.Driver == model.DriverMemory {
		logger.Warn("using in-memory store; tasks are lost on exit")
		m := store.NewMemoryStore()
		return m, m, nil
	}

	s, err := store.Open(ctx, db, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		s.Close()
		return nil, nil, err
	}

	logger.WithField("driver", db.Driver).Info("store opened")
	return s, s, nil
}

// Run shows the task list until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("task planner started")
	defer a.logger.Info("task planner stopped")

	if err := a.controller.Run(ctx); err != nil {
		return fmt.Errorf("running task planner: %w", err)
	}
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.closer.Close()
}

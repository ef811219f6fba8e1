package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/nhle/task-planner/internal/model"
)

// SQLStore implements Store on a relational database through sqlx.
// Each call checks out its own connection and prepared statement and
// releases both before returning; the pool keeps no idle connections.
type SQLStore struct {
	db     *sqlx.DB
	driver string
	logger log.FieldLogger
}

// Open connects to the database described by cfg. For sqlite without a
// DSN the directory holding the database file is created. Open does not
// create the tasks table; call EnsureSchema for that.
func Open(ctx context.Context, cfg model.DatabaseConfig, logger log.FieldLogger) (*SQLStore, error) {
	if _, ok := tasksDDL[cfg.Driver]; !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	if cfg.Driver == model.DriverSQLite && cfg.DSN == "" && cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", cfg.Driver, err)
	}
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s db: %w", cfg.Driver, err)
	}

	return &SQLStore{
		db:     db,
		driver: cfg.Driver,
		logger: logger.WithField("driver", cfg.Driver),
	}, nil
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tasks table if it does not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, tasksDDL[s.driver]); err != nil {
		s.logger.WithError(err).Error("creating tasks table")
		return fmt.Errorf("creating tasks table: %w", err)
	}
	return nil
}

// List returns every task row. On failure it logs, and returns nil with the error.
func (s *SQLStore) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := s.withStmt(ctx, listQuery, func(stmt *sqlx.Stmt) error {
		return stmt.SelectContext(ctx, &tasks)
	})
	if err != nil {
		s.logger.WithError(err).WithField("op", "list").Error("listing tasks")
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Add inserts the task's four mutable fields. task.ID is ignored.
func (s *SQLStore) Add(ctx context.Context, task model.Task) error {
	err := s.withStmt(ctx, insertQuery, func(stmt *sqlx.Stmt) error {
		_, err := stmt.ExecContext(ctx,
			task.Name, task.Description, task.Category, task.Deadline,
		)
		return err
	})
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"op":   "add",
			"name": task.Name,
		}).Error("adding task")
		return fmt.Errorf("adding task: %w", err)
	}
	return nil
}

// Update replaces the four mutable fields of the row with task.ID.
// Zero affected rows is not an error.
func (s *SQLStore) Update(ctx context.Context, task model.Task) error {
	err := s.withStmt(ctx, updateQuery, func(stmt *sqlx.Stmt) error {
		_, err := stmt.ExecContext(ctx,
			task.Name, task.Description, task.Category, task.Deadline,
			task.ID,
		)
		return err
	})
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"op":      "update",
			"task_id": task.ID,
		}).Error("updating task")
		return fmt.Errorf("updating task %d: %w", task.ID, err)
	}
	return nil
}

// Delete removes the row with the given id. A missing row is not an error.
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	err := s.withStmt(ctx, deleteQuery, func(stmt *sqlx.Stmt) error {
		_, err := stmt.ExecContext(ctx, id)
		return err
	})
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"op":      "delete",
			"task_id": id,
		}).Error("deleting task")
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// withStmt checks out a dedicated connection, prepares query on it and runs
// fn. Statement and connection are closed on every path.
func (s *SQLStore) withStmt(
	ctx context.Context,
	query string,
	fn func(stmt *sqlx.Stmt) error,
) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	stmt, err := conn.PreparexContext(ctx, conn.Rebind(query))
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	return fn(stmt)
}

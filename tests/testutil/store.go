package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/store"
)

// NewTestStore creates a SQLStore on a fresh sqlite file with the tasks
// table in place. It automatically closes the store when the test completes.
// A file is used rather than :memory: because every store call opens its
// own connection.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	logger, _ := test.NewNullLogger()
	cfg := model.DatabaseConfig{
		Driver: model.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "tasks.db"),
	}

	s, err := store.Open(context.Background(), cfg, logger)
	require.NoError(t, err, "creating test store")

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	require.NoError(t, s.EnsureSchema(context.Background()), "creating tasks table")

	return s
}

// MustDate parses a YYYY-MM-DD literal or fails the test.
func MustDate(t *testing.T, s string) model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

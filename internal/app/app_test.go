package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-planner/internal/credential"
	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/store"
)

func TestOpenStoreMemory(t *testing.T) {
	logger, hook := test.NewNullLogger()

	s, closer, err := OpenStore(context.Background(), model.DatabaseConfig{Driver: model.DriverMemory}, logger)
	require.NoError(t, err)
	defer closer.Close()

	assert.IsType(t, &store.MemoryStore{}, s)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestOpenStoreSQLiteCreatesTable(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx := context.Background()
	db := model.DatabaseConfig{
		Driver: model.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "tasks.db"),
	}

	s, closer, err := OpenStore(ctx, db, logger)
	require.NoError(t, err)
	defer closer.Close()

	task := model.Task{Name: "Write report", Description: "Q2", Category: "Work", Deadline: model.NewDate(2024, 5, 1)}
	require.NoError(t, s.Add(ctx, task))

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Name)
}

func TestOpenStoreSQLiteInNewDirectory(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx := context.Background()
	db := model.DatabaseConfig{
		Driver: model.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "taskplanner", "tasks.db"),
	}

	s, closer, err := OpenStore(ctx, db, logger)
	require.NoError(t, err)
	defer closer.Close()

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, _, err := OpenStore(context.Background(), model.DatabaseConfig{Driver: "oracle"}, logger)
	assert.Error(t, err)
}

func TestNewUsesConfiguredStore(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := model.DefaultAppConfig()
	cfg.Database = model.DatabaseConfig{Driver: model.DriverMemory}

	a, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &store.MemoryStore{}, a.store)
}

type fakePrompter struct {
	answer string
	ok     bool
	err    error
	calls  int
}

func (f *fakePrompter) PromptSecret(_ context.Context, _ string) (string, bool, error) {
	f.calls++
	return f.answer, f.ok, f.err
}

func mysqlConfig() model.DatabaseConfig {
	return model.DatabaseConfig{Driver: model.DriverMySQL, User: "root", Host: "localhost", Name: "tasks"}
}

func TestResolvePasswordUsesStoredValue(t *testing.T) {
	logger, _ := test.NewNullLogger()
	db := mysqlConfig()
	vault := credential.NewVault(keyring.NewArrayKeyring([]keyring.Item{
		{Key: db.CredentialKey(), Data: []byte("stored")},
	}))
	prompt := &fakePrompter{}

	require.NoError(t, ResolvePassword(context.Background(), &db, vault, prompt, logger))
	assert.Equal(t, "stored", db.Password)
	assert.Zero(t, prompt.calls)
}

func TestResolvePasswordPromptsAndSaves(t *testing.T) {
	logger, _ := test.NewNullLogger()
	db := mysqlConfig()
	vault := credential.NewVault(keyring.NewArrayKeyring(nil))
	prompt := &fakePrompter{answer: "typed", ok: true}

	require.NoError(t, ResolvePassword(context.Background(), &db, vault, prompt, logger))
	assert.Equal(t, "typed", db.Password)
	assert.Equal(t, 1, prompt.calls)

	saved, err := vault.Get(db.CredentialKey())
	require.NoError(t, err)
	assert.Equal(t, "typed", saved)
}

func TestResolvePasswordCancelled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	db := mysqlConfig()
	vault := credential.NewVault(keyring.NewArrayKeyring(nil))

	err := ResolvePassword(context.Background(), &db, vault, &fakePrompter{ok: false}, logger)
	assert.ErrorIs(t, err, ErrPasswordCancelled)
}

func TestForgetPassword(t *testing.T) {
	db := mysqlConfig()
	vault := credential.NewVault(keyring.NewArrayKeyring([]keyring.Item{
		{Key: db.CredentialKey(), Data: []byte("stored")},
	}))

	require.NoError(t, ForgetPassword(db, vault))
	_, err := vault.Get(db.CredentialKey())
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-planner/internal/model"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskplanner.log")

	logger, closer, err := New(model.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)
	logger.WithField("op", "list").Debug("listing tasks")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"op":"list"`)
	assert.Contains(t, string(raw), `"msg":"listing tasks"`)
}

func TestNewLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}

	for _, tt := range tests {
		logger, closer, err := New(model.LogConfig{Level: tt.in})
		require.NoError(t, err)
		closer.Close()
		assert.Equal(t, tt.want, logger.GetLevel(), "level %q", tt.in)
	}
}

func TestNewFallsBackToStderr(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	logger, closer, err := New(model.LogConfig{File: filepath.Join(blocker, "taskplanner.log")})
	assert.Error(t, err)
	defer closer.Close()
	assert.Equal(t, os.Stderr, logger.Out)
}

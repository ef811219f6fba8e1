// Package logging configures the diagnostic logger. The terminal is owned by
// the UI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/nhle/task-planner/internal/model"
)

// New builds a logger from cfg. The returned closer releases the log file
// and must be called on exit. If the file cannot be opened the logger falls
// back to stderr and the open error is returned alongside it.
func New(cfg model.LogConfig) (*log.Logger, io.Closer, error) {
	logger := log.New()

	level, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if cfg.File == "" {
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	}

	f, openErr := openLogFile(cfg.File)
	if openErr != nil {
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, openErr
	}
	logger.SetOutput(f)
	return logger, f, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

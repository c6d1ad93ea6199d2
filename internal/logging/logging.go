// Package logging builds the process-wide zap loggers. The terminal app logs
// to a file because bubbletea owns stdout and stderr; the API server logs to
// stderr like any service.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFileLogger creates a logger appending JSON lines to path, creating
// parent directories as needed. Used by the TUI process.
func NewFileLogger(path string, debug bool) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(f),
		level,
	)
	logger := zap.New(core)

	cleanup := func() {
		logger.Sync()
		f.Close()
	}
	return logger, cleanup, nil
}

// DefaultLogPath resolves the TUI log file under the XDG state directory.
func DefaultLogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "engtutor.log"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "engtutor", "engtutor.log")
}

// NewServerLogger creates the stderr logger for the API server.
func NewServerLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

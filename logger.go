//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger. It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the package logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// NewFileLogger creates dir if needed and returns a logger writing JSON lines
// to a new obs-<timestamp>.log file in it, along with the file path.
func NewFileLogger(dir string) (*zap.Logger, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("obsgo: create log directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("obs-%s.log", time.Now().Format("2006-01-02-15-04-05")))

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil
	l, err := cfg.Build()
	if err != nil {
		return nil, "", fmt.Errorf("obsgo: open log file: %w", err)
	}
	return l, path, nil
}

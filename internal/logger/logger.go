// Package logger provides leveled diagnostic logging for the portal generator.
//
// Diagnostics go to stderr so they never mix with the rendered configuration
// that `generate` prints to stdout, or with JSON output.
//
// # Initialization
//
//	logger.Init(verbose)  // verbose=true enables Debug level
//
// By default only Warn and Error messages are shown.
//
// # Usage
//
// Messages take slog-style key/value pairs:
//
//	logger.Debug("reading checksum file", "path", sumPath)
//	logger.Info("live file replaced", "path", live, "backup", bak)
//	logger.Warn("options file not found, using defaults", "path", path)
//
// Components that want their own logger (the update controller) take the
// *slog.Logger returned by L.
//
// # Output Format
//
//	time=2026-10-19T10:30:45 level=DEBUG msg="reading checksum file" path=/etc/ood/config/ood_portal.sha256sum
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

const timeFormat = "2006-01-02T15:04:05"

var (
	mu    sync.RWMutex
	level = new(slog.LevelVar)
	std   = newLogger(os.Stderr)
)

func init() {
	level.Set(slog.LevelWarn)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeFormat))
			}
			return a
		},
	}))
}

// Init sets the level from the --verbose flag.
// When verbose is false, only Warn and Error are shown.
func Init(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelWarn)
	}
}

// SetLevel sets the minimum log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput sets the output destination. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	std = newLogger(w)
}

// L returns the shared logger for components that accept a *slog.Logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// Since is a helper for timing a step: defer logger.Since("render", time.Now()).
func Since(step string, start time.Time) {
	L().Debug("step finished", "step", step, "elapsed", time.Since(start).Round(time.Microsecond))
}

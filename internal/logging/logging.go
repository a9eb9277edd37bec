// Package logging configures the process-wide slog logger.
//
// The terminal belongs to the TUI, so diagnostics go to a file instead of
// stderr. When the file cannot be opened logging is discarded rather than
// corrupting the screen.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is where the log file goes when none is given.
const DefaultPath = "~/.local/state/uetail/uetail.log"

// Init creates and sets the package-level default slog logger writing text
// records to w.
func Init(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// OpenFile opens path for appending, creating parent directories. A leading
// "~" is expanded to the home directory.
func OpenFile(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Setup opens the log file at path and installs the default logger. The
// returned close function is never nil.
func Setup(path string, level slog.Level) (*slog.Logger, func() error) {
	f, err := OpenFile(path)
	if err != nil {
		return Init(io.Discard, level), func() error { return nil }
	}
	return Init(f, level), f.Close
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

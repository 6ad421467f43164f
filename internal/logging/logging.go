// Package logging configures slog for calchat. The TUI owns the terminal,
// so log records go to a file instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLogPath returns ~/.calchat/calchat.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "calchat.log")
	}
	return filepath.Join(home, ".calchat", "calchat.log")
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) to a
// slog.Level. Unknown values map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Setup points the default slog logger at a JSON handler appending to path
// (DefaultLogPath when empty). The returned cleanup closes the file.
func Setup(path string, level slog.Level) (cleanup func(), err error) {
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { _ = f.Close() }, nil
}

// SetupWriter sends text-formatted records to w. Used by the one-shot CLI
// commands and by tests.
func SetupWriter(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

package tui

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// debugLogger returns a logger writing to DATEPICK_TUI_DEBUG_LOG, or a
// discarding logger when the variable is unset. The alt screen owns stdout,
// so debug output can only go to a file.
func debugLogger() (*slog.Logger, io.Closer) {
	path := strings.TrimSpace(os.Getenv("DATEPICK_TUI_DEBUG_LOG"))
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

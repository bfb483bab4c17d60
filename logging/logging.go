// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// NewHandler returns a text handler for interactive terminals and a JSON
// handler for everything else.
func NewHandler(w io.Writer, terminal bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Setup installs the default logger writing to f and returns it.
func Setup(f *os.File, level slog.Level) *slog.Logger {
	logger := slog.New(NewHandler(f, IsTerminal(f), level))
	slog.SetDefault(logger)
	return logger
}

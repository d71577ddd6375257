package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a structured JSON slog.Logger with the given level.
// Debug level also annotates records with their source location.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if level == slog.LevelDebug {
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

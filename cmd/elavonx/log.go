package main

import (
	"log/slog"
	"os"

	"elavonx/internal/slogutil"
)

// newLogger creates a logger matching the output format: JSON output
// keeps the log stream machine-readable too.
func newLogger(format string) *slog.Logger {
	level := slogutil.LevelFromString(logLevelFlag)
	if format == "json" {
		return slogutil.NewJSONLogger(os.Stderr, level)
	}
	return slogutil.NewLogger(os.Stderr, level)
}

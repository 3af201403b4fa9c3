// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
)

// Init sets the default logger. Verbose enables debug-level output; logs go
// to stderr so report output on stdout stays machine-readable.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Package log is a thin slog wrapper used by the unattended pipeline
// commands; interactive commands keep plain stdout output.
package log

import (
	"log/slog"
	"os"
)

type Logger struct {
	*slog.Logger
}

// New creates a component-tagged text logger writing to stdout.
func New(component string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{Logger: slog.New(handler).With("component", component)}
}

// WithComponent returns a child logger for a sub-step.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

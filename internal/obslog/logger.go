// Package obslog wraps log/slog with a fixed component label attached to
// every record.
package obslog

import (
	"log/slog"
	"os"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) toSlog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a *slog.Logger tagged with a fixed "component" attribute.
type Logger struct {
	*slog.Logger
	component string
}

// New builds a JSON-handler logger writing to stderr, keeping stdout free
// for the CLI's machine-readable result output.
func New(component string, level Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level.toSlog()})
	base := slog.New(handler).With("component", component)
	return &Logger{Logger: base, component: component}
}

// WithComponent returns a copy of the logger tagged with a different
// component, sharing the underlying handler.
func (l *Logger) WithComponent(component string) *Logger {
	base := slog.New(l.Handler()).With("component", component)
	return &Logger{Logger: base, component: component}
}

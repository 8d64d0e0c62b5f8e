// Package logx is the structured-logging wrapper used across
// spectre-capture's components. It carries the small field vocabulary
// this core actually emits: component name, file paths, sample counts,
// and frequencies — nothing more.
//
// This core has no CLI and no daemon lifecycle of its own (spec.md §6);
// logx exists so that the lifecycle events a host runtime cares about
// (batch opened/closed, retune published, fatal I/O) are structured
// key-value records rather than ad hoc fmt.Printf text.
package logx

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is a component-scoped structured logger.
type Logger struct {
	inner *charmlog.Logger
}

// New returns a Logger that prefixes every record with component, e.g.
// "sink", "sweep", "staircase".
func New(component string) *Logger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          component,
	})
	return &Logger{inner: l}
}

// Info logs an informational lifecycle event (batch opened/closed, retune
// published) with structured key-value fields.
func (l *Logger) Info(msg string, kv ...any) {
	l.inner.Info(msg, kv...)
}

// Warn logs a recoverable anomaly, e.g. a dropped tag or a buffer-full
// condition upstream of this core.
func (l *Logger) Warn(msg string, kv ...any) {
	l.inner.Warn(msg, kv...)
}

// Error logs a fatal condition (spec.md §7: IoError, ConfigurationError,
// UndefinedTagState, TagValueError) that a component has returned.
func (l *Logger) Error(msg string, kv ...any) {
	l.inner.Error(msg, kv...)
}

// Package logging provides a small leveled logger wrapping the standard
// library's log package, tagging every line with a bracketed component
// name — the convention the teacher's own service-level logging follows.
package logging

import (
	"log"
	"os"
)

// Logger writes bracketed, component-tagged lines to an underlying
// *log.Logger.
type Logger struct {
	component string
	std       *log.Logger
}

// New builds a Logger tagged with component, writing to stderr with a
// standard timestamp prefix.
func New(component string) *Logger {
	return &Logger{
		component: component,
		std:       log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) prefix() string { return "[" + l.component + "] " }

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.std.Printf(l.prefix()+format, args...)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.std.Printf(l.prefix()+"WARN: "+format, args...)
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.std.Printf(l.prefix()+"ERROR: "+format, args...)
}

// Package logger provides verbose tracing of compilation decisions.
//
// Output is produced only when the logger is enabled. Records go through
// log/slog with a text handler, so every line carries the "lers" prefix as
// a component attribute and key/value pairs stay machine-readable.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger writes verbose compile-time output.
// A nil *Logger is valid and discards everything.
type Logger struct {
	enabled bool
	slog    *slog.Logger
}

// NewWithOutput creates a logger writing to w. A nil w means os.Stderr.
func NewWithOutput(enabled bool, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := &Logger{enabled: enabled}
	l.SetOutput(w)
	return l
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return NewWithOutput(false, io.Discard)
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// timestamps make traces non-reproducible
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	l.slog = slog.New(h).With("component", "lers")
}

// Log writes msg with key/value pairs if verbose mode is enabled.
func (l *Logger) Log(msg string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.slog.Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Section writes a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if !l.Enabled() {
		return
	}
	l.slog.Log(context.Background(), slog.LevelInfo, "=== "+name+" ===")
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

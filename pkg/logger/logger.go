// Package logger provides the structured logger used across crashlink.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a leveled, key/value structured logger.
//
// Arguments after the message are alternating keys and values, the same
// convention as log/slog: log.Debug("section appended", "title", title).
type Logger interface {
	// Debug logs at debug level.
	Debug(msg string, kv ...any)

	// Info logs at info level.
	Info(msg string, kv ...any)

	// Warn logs at warn level.
	Warn(msg string, kv ...any)

	// Error logs at error level.
	Error(msg string, kv ...any)

	// With returns a logger that adds kv to every record.
	With(kv ...any) Logger
}

// SlogLogger implements Logger on top of a slog.Logger.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an existing slog.Logger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SlogLogger{l: l}
}

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Debug logs at debug level.
func (s *SlogLogger) Debug(msg string, kv ...any) {
	s.l.Debug(msg, kv...)
}

// Info logs at info level.
func (s *SlogLogger) Info(msg string, kv ...any) {
	s.l.Info(msg, kv...)
}

// Warn logs at warn level.
func (s *SlogLogger) Warn(msg string, kv ...any) {
	s.l.Warn(msg, kv...)
}

// Error logs at error level.
func (s *SlogLogger) Error(msg string, kv ...any) {
	s.l.Error(msg, kv...)
}

// With returns a logger that adds kv to every record.
//
//nolint:ireturn // interface for polymorphism
func (s *SlogLogger) With(kv ...any) Logger {
	return &SlogLogger{l: s.l.With(kv...)}
}

// Enabled reports whether records at level would be emitted.
func (s *SlogLogger) Enabled(level slog.Level) bool {
	return s.l.Enabled(context.Background(), level)
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") into a
// slog.Level. Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

// NewNoOpLogger returns a logger that discards all records.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Warn does nothing.
func (*NoOpLogger) Warn(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same no-op logger.
//
//nolint:ireturn // interface for polymorphism
func (n *NoOpLogger) With(...any) Logger {
	return n
}

// Verify interface compliance.
var (
	_ Logger = (*SlogLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)

// Package logging provides structured JSON logging built on log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to a slog level.
// Supported levels: debug, info, warn, error
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// NewLogger creates a new structured JSON logger on stdout with the specified level.
func NewLogger(level string) *slog.Logger {
	return NewLoggerTo(os.Stdout, level)
}

// NewLoggerTo creates a JSON logger writing to w
func NewLoggerTo(w io.Writer, level string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		// Add source location for debug level
		AddSource: lvl == slog.LevelDebug,
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithComponent returns a logger with component attribute
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithSlot returns a logger with slot attribute
func WithSlot(logger *slog.Logger, slot int) *slog.Logger {
	return logger.With("slot", slot)
}

// WithSourceID returns a logger with source_id attribute
func WithSourceID(logger *slog.Logger, sourceID string) *slog.Logger {
	return logger.With("source_id", sourceID)
}

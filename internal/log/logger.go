// Package log provides structured logging on top of log/slog.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/helixml/markerrange/internal/config"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for logging.
const (
	RequestIDKey ContextKey = "request_id"
	RangeIDKey   ContextKey = "range_id"
)

// Logger wraps slog.Logger with context-aware helpers.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger writing to w in the configured format.
// Pretty output is coloured unless NO_COLOR is set.
func NewLogger(cfg config.AppConfig, w io.Writer) *Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	return newLogger(w, cfg.LogFormat(), cfg.LogLevel(), !noColor)
}

func newLogger(w io.Writer, format config.LogFormat, level string, color bool) *Logger {
	lvl := ParseLevel(level)

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		handler = newTerminalHandler(w, lvl, color)
	}
	return &Logger{logger: slog.New(handler)}
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// With returns a new Logger with additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// WithContext returns a logger carrying the request and range IDs found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	attrs := make([]any, 0, 4)
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, string(RequestIDKey), id)
	}
	if id := RangeID(ctx); id != "" {
		attrs = append(attrs, string(RangeIDKey), id)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

// InfoContext logs at info level with context.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs at warn level with context.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs at error level with context.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).logger.ErrorContext(ctx, msg, args...)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithRangeID adds a range ID to the context.
func WithRangeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RangeIDKey, id)
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// RangeID extracts the range ID from context.
func RangeID(ctx context.Context) string {
	id, _ := ctx.Value(RangeIDKey).(string)
	return id
}

// Configure builds a Logger from configuration, writing to stderr, and
// installs it as the slog default. Stdout is left to command output and the
// MCP stdio transport.
func Configure(cfg config.AppConfig) *Logger {
	l := NewLogger(cfg, os.Stderr)
	slog.SetDefault(l.logger)
	return l
}

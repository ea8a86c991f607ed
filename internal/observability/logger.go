// Package observability provides structured logging, request-scoped loggers, and formatted CLI output.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 5
	maxLogAgeDays = 14
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyLogger    ctxKey = "logger"
)

// LogConfig selects the log level, format and destination
type LogConfig struct {
	Level  string
	Format string
	// File enables rotated file output; empty logs to stderr
	File string
}

// NewLogger builds a JSON (or text) slog logger. When cfg.File is set the output
// is rotated with lumberjack and the returned closer must be closed on shutdown.
func NewLogger(cfg LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	logPath := strings.TrimSpace(cfg.File)
	if logPath == "" {
		return slog.New(newHandler(cfg.Format, stderr, opts)), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return slog.New(newHandler(cfg.Format, stderr, opts)), nopCloser{}, err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
	return slog.New(newHandler(cfg.Format, writer, opts)), writer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a configured level name onto slog; unknown values are info
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

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}

// NewRequestID returns a fresh request identifier
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestID returns the request_id stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// WithLogger stores a request-scoped logger in the context
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// LoggerFromContext returns the request-scoped logger, or fallback annotated with
// the request_id when only the ID is present.
func LoggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if fallback == nil {
		fallback = slog.Default()
	}
	if id := RequestID(ctx); id != "" {
		return fallback.With("request_id", id)
	}
	return fallback
}

package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ParseLevel(input), input)
	}
}

func TestNewLogger_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := NewLogger(LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("dropped")
	logger.Warn("provider failed", slog.String("provider", "openai"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "provider failed", entry["msg"])
	assert.Equal(t, "openai", entry["provider"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := NewLogger(LogConfig{Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewLogger_RotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lift.log")
	logger, closer, err := NewLogger(LogConfig{File: path}, nil)
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))

	LoggerFromContext(ctx, base).Info("scoped")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)

	scoped := base.With("user_id", "u1")
	assert.Same(t, scoped, LoggerFromContext(WithLogger(ctx, scoped), base))

	assert.Same(t, base, LoggerFromContext(context.Background(), base))
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestNew_JSONWithTimestampKey(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "info"})
	require.NoError(t, err)

	logger.Info("hello", slog.Int("count", 3))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])
	assert.Equal(t, float64(3), lines[0]["count"])
	assert.Contains(t, lines[0], "timestamp")
	assert.NotContains(t, lines[0], "time")
}

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
}

func TestNew_UnsupportedLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.ErrorContains(t, err, "unsupported log level")
}

func TestEvent_AddsEventAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug"})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-1")
	Event(ctx, logger, slog.LevelDebug, "batch_generated", slog.Int("count", 2))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "batch_generated", lines[0]["event"])
	assert.Equal(t, "req-1", lines[0]["request_id"])
}

func TestEvent_NilLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Event(context.Background(), nil, slog.LevelError, "ignored")
	})
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With(slog.String("component", "test"))

	logger.Info("info only")
	logger.Error("both")

	assert.Len(t, decodeLines(t, &a), 2)
	errLines := decodeLines(t, &b)
	require.Len(t, errLines, 1)
	assert.Equal(t, "test", errLines[0]["component"])
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		out = append(out, rec)
	}
	return out
}

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()

	l.Debug(ctx, "grpc call", "method", "/grpc.health.v1.Health/Check")
	l.Info(ctx, "Registered", "user_id", "u-1")
	l.Warn(ctx, "database ping failed", "error", errors.New("timeout"))
	l.Error(ctx, "request failed", "status", 500)

	recs := jsonRecords(t, &buf)
	require.Len(t, recs, 4)

	tests := []struct {
		level, msg, key string
		val             any
	}{
		{"DEBUG", "grpc call", "method", "/grpc.health.v1.Health/Check"},
		{"INFO", "Registered", "user_id", "u-1"},
		{"WARN", "database ping failed", "error", "timeout"},
		{"ERROR", "request failed", "status", float64(500)},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.level, recs[i]["level"])
		assert.Equal(t, tt.msg, recs[i]["msg"])
		assert.Equal(t, tt.val, recs[i][tt.key])
	}
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	l.Debug(context.Background(), "dropped")
	l.Info(context.Background(), "dropped")
	l.Warn(context.Background(), "kept")

	recs := jsonRecords(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0]["msg"])
}

func TestSlogLogger_WithKeepsParentClean(t *testing.T) {
	var buf bytes.Buffer
	root := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	root.With("module", "http_server", "request_id", "r-1").Info(context.Background(), "request", "status", 200)
	root.Info(context.Background(), "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "module=http_server")
	assert.Contains(t, lines[0], "request_id=r-1")
	assert.Contains(t, lines[0], "status=200")
	assert.NotContains(t, lines[1], "module=")
}

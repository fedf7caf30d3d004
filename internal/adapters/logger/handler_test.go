package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/grove/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{name: "debug", level: slog.LevelDebug, want: "· msg\n"},
		{name: "info", level: slog.LevelInfo, want: "msg\n"},
		{name: "warn", level: slog.LevelWarn, want: "! msg\n"},
		{name: "error", level: slog.LevelError, want: "✗ msg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			slog.New(h).Log(context.Background(), tt.level, "msg")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	h := logger.NewPrettyHandler(&buf, nil).
		WithAttrs([]slog.Attr{slog.String("plugin", "fs")}).
		WithGroup("node")
	slog.New(h).Info("created", "id", "1")

	assert.Equal(t, "created node.plugin=fs node.id=1\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, nil)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/kitsnotes/hollywood/internal/adapters/logger"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("stage", "emit").WithGroup("action")

	lg.Info("mkdir", "line", 12, slog.Group("op", "kind", "exec"))
	assert.Equal(t, "● mkdir stage=emit action.line=12 action.op.kind=exec\n", buf.String())
}

func TestPrettyHandler_LevelFromOptions(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var level slog.LevelVar
	level.Set(slog.LevelWarn)
	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: &level}))

	lg.Info("hidden")
	level.Set(slog.LevelInfo)
	lg.Info("shown")
	assert.Equal(t, "● shown\n", buf.String())
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	h := logger.NewPrettyHandler(nil, nil)
	require.NotNil(t, h)
	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
}

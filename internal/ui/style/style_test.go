package style_test

import (
	"log/slog"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/ui/style"
	"github.com/stretchr/testify/assert"
)

func TestForSeverity(t *testing.T) {
	assert.Equal(t, style.Red, style.ForSeverity(domain.SeverityError))
	assert.Equal(t, style.Yellow, style.ForSeverity(domain.SeverityWarning))
}

func TestForLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		color lipgloss.Color
		icon  string
	}{
		{slog.LevelDebug, style.Slate, style.Dot},
		{slog.LevelInfo, style.Slate, style.Dot},
		{slog.LevelWarn, style.Yellow, style.Warning},
		{slog.LevelWarn + 1, style.Yellow, style.Warning},
		{slog.LevelError, style.Red, style.Cross},
		{slog.LevelError + 4, style.Red, style.Cross},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			color, icon := style.ForLevel(tt.level)
			assert.Equal(t, tt.color, color)
			assert.Equal(t, tt.icon, icon)
		})
	}
}

// Package style holds the palette and icons shared by diagnostics, logs and
// progress output.
package style

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/muesli/termenv"
)

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// ForSeverity returns the colour a diagnostic severity is printed in.
func ForSeverity(s domain.Severity) lipgloss.Color {
	if s == domain.SeverityError {
		return Red
	}
	return Yellow
}

// ForLevel returns the colour and icon of a log level.
func ForLevel(l slog.Level) (lipgloss.Color, string) {
	switch {
	case l >= slog.LevelError:
		return Red, Cross
	case l >= slog.LevelWarn:
		return Yellow, Warning
	default:
		return Slate, Dot
	}
}

// Foreground converts a palette colour for termenv styling.
func Foreground(c lipgloss.Color) termenv.Color {
	return termenv.RGBColor(string(c))
}

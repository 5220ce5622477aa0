// Package detector picks how execute reports progress from the terminal and CI
// environment.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode represents the progress rendering mode of a run.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeProgress records actions on a progress tape and shows them live.
	ModeProgress
	// ModeLinear prints chronological, prefixed logs.
	ModeLinear
)

// DetectEnvironment returns ModeProgress only for an interactive stdout outside CI.
func DetectEnvironment() OutputMode {
	if !IsTerminal(os.Stdout) || isCI() {
		return ModeLinear
	}
	return ModeProgress
}

// ResolveMode applies the --progress flag. Unknown values and "auto" keep the
// detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "progress":
		return ModeProgress
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

func isCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

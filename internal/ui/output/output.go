// Package output renders user-facing text: colour profile selection and the
// diagnostics report.
package output

import (
	"io"
	"os"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/muesli/termenv"
)

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ColorProfile detects what the attached terminal supports. NO_COLOR wins.
func ColorProfile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI is the profile for progress output that may land in CI
// logs, which render basic ANSI but not true colour. NO_COLOR wins.
func ColorProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// ProfileFor resolves a colour mode for one destination. Auto colours only
// terminals.
func ProfileFor(mode domain.ColorMode, tty bool) func() termenv.Profile {
	return func() termenv.Profile {
		switch mode {
		case domain.ColorNever:
			return termenv.Ascii
		case domain.ColorAlways:
			return termenv.ANSI
		}
		if !tty {
			return termenv.Ascii
		}
		return ColorProfile()
	}
}

// NewWithProfile wraps w in a termenv.Output whose profile is fixed by
// profileFn at creation. A nil w writes to stderr.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kitsnotes/hollywood/internal/ui/output"
	"github.com/kitsnotes/hollywood/internal/ui/style"
	"github.com/muesli/termenv"
)

// PrettyHandler is a slog.Handler writing one coloured line per record: the
// level icon, the message, then key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// attrs holds the handler attributes, already rendered.
	attrs string
	// prefix qualifies record attributes with the open groups, as "a.b.".
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// Colour follows the terminal and NO_COLOR.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	return NewPrettyHandlerWithProfile(w, opts, output.ColorProfile)
}

// NewPrettyHandlerWithProfile creates a PrettyHandler with a custom colour profile selector.
func NewPrettyHandlerWithProfile(w io.Writer, opts *slog.HandlerOptions, profileFn func() termenv.Profile) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.NewWithProfile(w, profileFn),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	color, icon := style.ForLevel(r.Level)

	var b strings.Builder
	b.WriteString(icon)
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})

	line := h.out.String(b.String()).Foreground(style.Foreground(color))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}

	c := *h
	c.attrs = b.String()
	return &c
}

// WithGroup returns a new Handler qualifying later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, prefix, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}

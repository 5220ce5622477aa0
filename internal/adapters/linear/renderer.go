// Package linear provides a synchronous, line-buffered renderer for plan runs.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/kitsnotes/hollywood/internal/core/ports"
	"github.com/kitsnotes/hollywood/internal/ui/output"
	"github.com/kitsnotes/hollywood/internal/ui/style"
	"github.com/muesli/termenv"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer for non-interactive output.
// Action output goes to stdout, one prefixed line at a time; lifecycle
// messages go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	actions map[string]*actionState
}

type actionState struct {
	name      string
	startTime time.Time
	buf       bytes.Buffer
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	profile func() termenv.Profile
}

// WithProfile replaces the colour profile selector.
func WithProfile(fn func() termenv.Profile) Option {
	return func(c *config) {
		c.profile = fn
	}
}

// NewRenderer creates a new linear Renderer. Nil writers default to the
// process's stdout and stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg := config{profile: output.ColorProfileANSI}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, cfg.profile),
		actions: make(map[string]*actionState),
	}
}

// Start is a no-op for the linear renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.actions {
		r.flushLocked(a)
	}
	return nil
}

// Wait is a no-op for the linear renderer.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit announces the number of actions.
func (r *Renderer) OnPlanEmit(ids []string, _ map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Performing %d action(s)\n", len(ids))
}

// OnActionStart prints an action start message.
func (r *Renderer) OnActionStart(id, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions[id] = &actionState{name: name, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnActionLog buffers output and prints complete lines with the action prefix.
func (r *Renderer) OnActionLog(id string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actions[id]
	if !ok {
		return
	}

	a.buf.Write(data)
	for {
		i := bytes.IndexByte(a.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := a.buf.Next(i + 1)
		r.printLineLocked(a.name, line)
	}
}

// OnActionComplete flushes the remaining output and prints the outcome.
func (r *Renderer) OnActionComplete(id string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actions[id]
	if !ok {
		return
	}
	r.flushLocked(a)

	duration := endTime.Sub(a.startTime)
	prefix := fmt.Sprintf("[%s]", a.name)
	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
	}

	delete(r.actions, id)
}

// flushLocked prints any partial line left for an action.
// Must be called with r.mu held.
func (r *Renderer) flushLocked(a *actionState) {
	if a.buf.Len() > 0 {
		r.printLineLocked(a.name, a.buf.Bytes())
		a.buf.Reset()
	}
}

// printLineLocked prints a line with the action name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}

// Package progrock records plan runs on a Progrock tape.
package progrock

import (
	"context"
	"sync"
	"time"

	"github.com/kitsnotes/hollywood/internal/core/ports"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

var _ ports.Renderer = (*Recorder)(nil)

// Recorder implements ports.Renderer by recording one vertex per action.
// Every event is also forwarded to a display renderer.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	display ports.Renderer

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// New creates a Recorder writing to an in-memory tape.
func New(display ports.Renderer) *Recorder {
	return NewRecorder(progrock.NewTape(), display)
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer, display ports.Renderer) *Recorder {
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		display:  display,
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// Start starts the display renderer.
func (r *Recorder) Start(ctx context.Context) error {
	return r.display.Start(ctx)
}

// Stop stops the display and closes the recording session.
func (r *Recorder) Stop() error {
	err := r.display.Stop()
	if c, ok := r.w.(interface{ Close() error }); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Wait waits for the display renderer.
func (r *Recorder) Wait() error {
	return r.display.Wait()
}

// OnPlanEmit forwards the plan to the display.
func (r *Recorder) OnPlanEmit(ids []string, names map[string]string) {
	r.display.OnPlanEmit(ids, names)
}

// OnActionStart opens a vertex named after the action.
func (r *Recorder) OnActionStart(id, name string, startTime time.Time) {
	v := r.rec.Vertex(digest.FromString(id), name)

	r.mu.Lock()
	r.vertices[id] = v
	r.mu.Unlock()

	r.display.OnActionStart(id, name, startTime)
}

// OnActionLog writes output to the action's vertex.
func (r *Recorder) OnActionLog(id string, data []byte) {
	if v := r.vertex(id); v != nil {
		_, _ = v.Stdout().Write(data)
	}
	r.display.OnActionLog(id, data)
}

// OnActionComplete completes the action's vertex.
func (r *Recorder) OnActionComplete(id string, endTime time.Time, err error) {
	r.mu.Lock()
	v := r.vertices[id]
	delete(r.vertices, id)
	r.mu.Unlock()

	if v != nil {
		v.Done(err)
	}
	r.display.OnActionComplete(id, endTime, err)
}

// Pending returns the number of actions started but not completed.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vertices)
}

func (r *Recorder) vertex(id string) *progrock.VertexRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vertices[id]
}

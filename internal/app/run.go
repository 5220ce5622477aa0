package app

import (
	"context"
	"fmt"
	"io"

	"github.com/kitsnotes/hollywood/internal/adapters/detector"
	"github.com/kitsnotes/hollywood/internal/adapters/linear"
	"github.com/kitsnotes/hollywood/internal/adapters/progrock"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"github.com/kitsnotes/hollywood/internal/engine/runner"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

func newRenderer(mode detector.OutputMode, stdout, stderr io.Writer, profile func() termenv.Profile) ports.Renderer {
	display := linear.NewRenderer(stdout, stderr, linear.WithProfile(profile))
	if mode == detector.ModeProgress {
		return progrock.New(display)
	}
	return display
}

func actionName(a *domain.Action) string {
	return runner.Name(a)
}

// run drives the runner and the renderer concurrently.
func (a *App) run(ctx context.Context, plan *domain.Plan, target string, renderer ports.Renderer) error {
	r := runner.New(a.executor, renderer, a.logger)

	g, ctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	// Runner Routine
	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("runner panic: %v", p)
			}
			_ = renderer.Stop()
		}()
		return r.Run(ctx, plan, target)
	})

	return g.Wait()
}

// Package main is the entry point for the HorizonScript tools.
//
// The binary is multi-call: installed as hscript-validate, hscript-simulate,
// hscript-execute or hscript-printowner it behaves as that subcommand.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/kitsnotes/hollywood/cmd/hscript/commands"
	"github.com/kitsnotes/hollywood/internal/app"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	_ "github.com/kitsnotes/hollywood/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

const binaryName = "hscript"

func main() {
	os.Exit(run(context.Background(), dispatch(os.Args[0], os.Args[1:]), os.Stderr, provideComponents))
}

func provideComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

// dispatch maps a hscript-<command> program name to its subcommand.
func dispatch(argv0 string, args []string) []string {
	name := filepath.Base(argv0)
	cmd, ok := strings.CutPrefix(name, binaryName+"-")
	if !ok || cmd == "" {
		return args
	}
	return append([]string{cmd}, args...)
}

// silent reports whether err was already printed by the command itself.
func silent(err error) bool {
	return errors.Is(err, domain.ErrParseFailed) ||
		errors.Is(err, domain.ErrValidationFailed) ||
		errors.Is(err, domain.ErrOwnerLookupFailed)
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if silent(err) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// Package app implements the application layer for the HorizonScript tools.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kitsnotes/hollywood/internal/adapters/detector"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"github.com/kitsnotes/hollywood/internal/engine/emitter"
	"github.com/kitsnotes/hollywood/internal/engine/parser"
	"github.com/kitsnotes/hollywood/internal/engine/resolver"
	"github.com/kitsnotes/hollywood/internal/engine/validator"
	"github.com/kitsnotes/hollywood/internal/ui/output"
	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	prober   ports.DeviceProber
	owners   ports.OwnerLookup
	codec    ports.PlanCodec
	executor ports.Executor
	logger   ports.Logger

	newRenderer func(mode detector.OutputMode, stdout, stderr io.Writer, profile func() termenv.Profile) ports.Renderer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	prober ports.DeviceProber,
	owners ports.OwnerLookup,
	codec ports.PlanCodec,
	executor ports.Executor,
	log ports.Logger,
) *App {
	return &App{
		loader:      loader,
		prober:      prober,
		owners:      owners,
		codec:       codec,
		executor:    executor,
		logger:      log,
		newRenderer: newRenderer,
	}
}

// WithRendererFactory replaces how execute builds its progress renderer.
// This is primarily used for testing.
func (a *App) WithRendererFactory(
	fn func(mode detector.OutputMode, stdout, stderr io.Writer, profile func() termenv.Profile) ports.Renderer,
) *App {
	a.newRenderer = fn
	return a
}

// RunOptions are the command line settings shared by every command.
// Boolean flags can only switch a behaviour on; the settings file may do the same.
type RunOptions struct {
	ConfigPath string
	Strict     bool
	KeepGoing  bool
	Install    bool
	Workers    int
	Target     string
	NoColor    bool
	LogJSON    bool

	// Format is the plan encoding: script, yaml or cbor.
	Format string
	// Output is the file simulate writes the plan to. Empty means stdout.
	Output string

	// Plan is a pre-encoded plan for execute to run instead of a script.
	Plan string
	// Yes confirms that execute may modify the system.
	Yes bool
	// Progress selects the execute renderer: auto, progress or linear.
	Progress string
}

// session is the resolved configuration of one command.
type session struct {
	opts  domain.Options
	color domain.ColorMode
}

func (s session) profile(w io.Writer) func() termenv.Profile {
	return output.ProfileFor(s.color, detector.IsTerminal(w))
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetProfile(fn func() termenv.Profile)
}

// configure loads the settings file and overlays the flags on it.
func (a *App) configure(ro RunOptions, stderr io.Writer) (session, error) {
	settings, err := a.loader.LoadSettings(ro.ConfigPath)
	if err != nil {
		return session{}, err
	}

	opts, err := settings.Apply(domain.DefaultOptions())
	if err != nil {
		return session{}, zerr.Wrap(err, "invalid settings file")
	}
	opts.Strict = opts.Strict || ro.Strict
	opts.KeepGoing = opts.KeepGoing || ro.KeepGoing
	opts.InstallEnvironment = ro.Install
	if ro.Workers > 0 {
		opts.Workers = ro.Workers
	}
	if ro.Target != "" {
		opts.TargetRoot = ro.Target
	}

	s := session{opts: opts.Normalize(), color: domain.ColorAuto}
	logJSON := ro.LogJSON
	if settings != nil {
		logJSON = logJSON || settings.LogJSON
		if settings.Color != "" {
			s.color = settings.Color
		}
	}
	if ro.NoColor {
		s.color = domain.ColorNever
	}

	if l, ok := a.logger.(configurableLogger); ok {
		l.SetProfile(s.profile(stderr))
		l.SetJSON(logJSON)
	}
	return s, nil
}

// analyse parses and validates the script at path. Validation is skipped
// when parsing failed.
func (a *App) analyse(ctx context.Context, path string, s session) (*domain.Document, domain.Diagnostics, error) {
	src, err := a.loader.LoadScript(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, nil, err
		}
		a.logger.Warn(fmt.Sprintf("%s: %s does not exist; treating it as empty", domain.ScriptFileName, path))
	}

	doc, diags := parser.Parse(src, s.opts)
	if s.opts.Strict {
		diags = diags.Escalate()
	}
	if diags.HasErrors() {
		return doc, diags, nil
	}

	found, err := validator.New(s.opts, a.prober, a.logger).Validate(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, append(diags, found...), nil
}

// failure maps diagnostics to the sentinel of the stage that failed.
func failure(diags domain.Diagnostics) error {
	if diags.Count(domain.StageParser, domain.SeverityError) > 0 {
		return domain.ErrParseFailed
	}
	return domain.ErrValidationFailed
}

// Validate checks the script at path and prints its diagnostics to stdout.
func (a *App) Validate(ctx context.Context, path string, ro RunOptions, stdout, stderr io.Writer) error {
	s, err := a.configure(ro, stderr)
	if err != nil {
		return err
	}

	_, diags, err := a.analyse(ctx, path, s)
	if err != nil {
		return err
	}

	if err := output.WriteDiagnostics(output.NewWithProfile(stdout, s.profile(stdout)), diags); err != nil {
		return zerr.Wrap(err, "failed to write diagnostics")
	}
	if diags.HasErrors() {
		return failure(diags)
	}
	return nil
}

// plan validates the script at path and emits its plan. On validation failure
// the diagnostics are printed to stdout; otherwise they go to stderr so stdout
// carries only the plan.
func (a *App) plan(ctx context.Context, path string, s session, stdout, stderr io.Writer) (*domain.Plan, error) {
	doc, diags, err := a.analyse(ctx, path, s)
	if err != nil {
		return nil, err
	}

	dst := stderr
	if diags.HasErrors() {
		dst = stdout
	}
	if err := output.WriteDiagnostics(output.NewWithProfile(dst, s.profile(dst)), diags); err != nil {
		return nil, zerr.Wrap(err, "failed to write diagnostics")
	}
	if diags.HasErrors() {
		return nil, failure(diags)
	}

	order, err := resolver.Resolve(doc)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to order entries")
	}
	return emitter.New(s.opts, a.logger).Emit(doc, order)
}

// Simulate validates the script at path and writes its plan, as a shell
// script by default.
func (a *App) Simulate(ctx context.Context, path string, ro RunOptions, stdout, stderr io.Writer) error {
	format := domain.PlanFormatFromPath(ro.Output)
	if ro.Format != "" {
		var err error
		if format, err = domain.ParsePlanFormat(ro.Format); err != nil {
			return err
		}
	}

	s, err := a.configure(ro, stderr)
	if err != nil {
		return err
	}

	plan, err := a.plan(ctx, path, s, stdout, stderr)
	if err != nil {
		return err
	}

	if ro.Output == "" {
		return a.writePlan(stdout, plan, format)
	}

	f, err := os.OpenFile(ro.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create plan file"), "path", ro.Output)
	}
	if err := a.writePlan(f, plan, format); err != nil {
		_ = f.Close()
		return err
	}
	return zerr.Wrap(f.Close(), "failed to write plan file")
}

func (a *App) writePlan(w io.Writer, plan *domain.Plan, format domain.PlanFormat) error {
	if format == domain.PlanFormatScript {
		return emitter.Render(w, plan)
	}
	return a.codec.Encode(w, plan, format)
}

// loadPlan decodes a plan file written by simulate.
func (a *App) loadPlan(path, formatName string) (*domain.Plan, error) {
	format := domain.PlanFormatFromPath(path)
	if formatName != "" {
		var err error
		if format, err = domain.ParsePlanFormat(formatName); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrPlanDecodeFailed, err), ""), "path", path)
	}
	defer func() { _ = f.Close() }()

	return a.codec.Decode(f, format)
}

// Execute performs the plan of the script at path, or of a plan file, on the
// target root. Without confirmation it only prints what would be done.
func (a *App) Execute(ctx context.Context, path string, ro RunOptions, stdout, stderr io.Writer) error {
	s, err := a.configure(ro, stderr)
	if err != nil {
		return err
	}

	var plan *domain.Plan
	if ro.Plan != "" {
		plan, err = a.loadPlan(ro.Plan, ro.Format)
	} else {
		plan, err = a.plan(ctx, path, s, stdout, stderr)
	}
	if err != nil {
		return err
	}

	if !ro.Yes {
		writeSummary(stdout, plan, s.opts.TargetRoot)
		return domain.ErrNotConfirmed
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), ro.Progress)
	renderer := a.newRenderer(mode, stdout, stderr, s.profile(stderr))
	return a.run(ctx, plan, s.opts.TargetRoot, renderer)
}

func writeSummary(w io.Writer, plan *domain.Plan, target string) {
	_, _ = fmt.Fprintf(w, "plan %s: %d action(s) on %s\n", plan.Fingerprint, plan.Len(), target)
	for i := range plan.Actions {
		_, _ = fmt.Fprintf(w, "  %s\n", actionName(&plan.Actions[i]))
	}
}

// PrintOwner returns the numeric user ID owning path.
func (a *App) PrintOwner(path string) (uint32, error) {
	return a.owners.Owner(path)
}

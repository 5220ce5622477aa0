// Package validator checks a parsed Document for semantic errors.
package validator

import (
	"context"
	"fmt"
	"slices"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Validator runs per-entry and global checks over a Document.
type Validator struct {
	opts  domain.Options
	probe ports.DeviceProber
}

// New creates a new Validator. probe may be nil when environment checks are off.
func New(opts domain.Options, probe ports.DeviceProber, log ports.Logger) *Validator {
	opts = opts.Normalize()
	if opts.InstallEnvironment && probe == nil {
		log.Warn("environment checks requested but no device prober is available; skipping them")
		opts.InstallEnvironment = false
	}
	return &Validator{
		opts:  opts,
		probe: probe,
	}
}

// checkResult holds the findings of one check. index orders checks: entries
// by script position, global checks after every entry.
type checkResult struct {
	index int
	diags domain.Diagnostics
}

// Validate checks doc and returns its diagnostics sorted by line.
//
// Without KeepGoing, validation stops after the first check that produced an
// error. In strict mode every warning is reported as an error.
func (v *Validator) Validate(ctx context.Context, doc *domain.Document) (domain.Diagnostics, error) {
	var (
		results []checkResult
		err     error
	)
	if v.opts.Workers > 1 {
		results, err = v.checkEntriesParallel(ctx, doc)
	} else {
		results, err = v.checkEntries(ctx, doc)
	}
	if err != nil {
		return nil, err
	}

	diags, stopped := v.collect(results)
	if !stopped {
		for _, check := range globalChecks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			var found domain.Diagnostics
			check(v, doc, report{diags: &found})
			diags = append(diags, found...)
			if !v.opts.KeepGoing && found.HasErrors() {
				break
			}
		}
	}

	if v.opts.Strict {
		diags = diags.Escalate()
	}
	return diags.Sorted(), nil
}

// collect concatenates results in check order and, without KeepGoing,
// truncates after the first check that produced an error.
func (v *Validator) collect(results []checkResult) (domain.Diagnostics, bool) {
	slices.SortFunc(results, func(a, b checkResult) int { return a.index - b.index })

	var diags domain.Diagnostics
	for _, r := range results {
		diags = append(diags, r.diags...)
		if !v.opts.KeepGoing && r.diags.HasErrors() {
			return diags, true
		}
	}
	return diags, false
}

func (v *Validator) checkEntries(ctx context.Context, doc *domain.Document) ([]checkResult, error) {
	cc := newCheckContext(doc)
	var results []checkResult
	index := 0
	for _, e := range doc.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := v.checkEntry(cc, index, e)
		results = append(results, r)
		index++
		if !v.opts.KeepGoing && r.diags.HasErrors() {
			break
		}
	}
	return results, nil
}

// checkEntriesParallel partitions entries by key. Each worker owns the
// trackers of its keys, so findings match the sequential pass.
func (v *Validator) checkEntriesParallel(ctx context.Context, doc *domain.Document) ([]checkResult, error) {
	type indexed struct {
		index int
		entry domain.Entry
	}
	groups := make(map[domain.Key][]indexed)
	index := 0
	for _, e := range doc.All() {
		groups[e.Key] = append(groups[e.Key], indexed{index: index, entry: e})
		index++
	}

	keys := doc.Keys()
	perKey := make([][]checkResult, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.opts.Workers)
	for i, key := range keys {
		g.Go(func() error {
			cc := newCheckContext(doc)
			for _, it := range groups[key] {
				if err := ctx.Err(); err != nil {
					return err
				}
				perKey[i] = append(perKey[i], v.checkEntry(cc, it.index, it.entry))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(perKey...), nil
}

func (v *Validator) checkEntry(cc *checkContext, index int, e domain.Entry) checkResult {
	var found domain.Diagnostics
	r := report{key: e.Key, line: e.Line, diags: &found}

	if check, ok := rules[e.Key]; ok {
		check(v, cc, e, r)
	} else if !e.Key.Known() {
		r.at("", e.Line).warnf("key '%s' is not defined", e.Key)
	}
	return checkResult{index: index, diags: found}
}

// report appends findings attributed to a key and line.
type report struct {
	key   domain.Key
	line  int
	diags *domain.Diagnostics
}

func (r report) at(key domain.Key, line int) report {
	r.key = key
	r.line = line
	return r
}

func (r report) add(sev domain.Severity, class domain.Class, format string, args []any) {
	*r.diags = append(*r.diags, domain.Diagnostic{
		Severity: sev,
		Stage:    domain.StageValidator,
		Class:    class,
		Key:      r.key,
		Line:     r.line,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r report) errorf(format string, args ...any) {
	r.add(domain.SeverityError, domain.ClassValidation, format, args)
}

func (r report) warnf(format string, args ...any) {
	r.add(domain.SeverityWarning, domain.ClassValidation, format, args)
}

// envf reports a failed check against the host.
func (r report) envf(format string, args ...any) {
	r.add(domain.SeverityError, domain.ClassEnvironment, format, args)
}

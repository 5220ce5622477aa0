package domain

import (
	"fmt"
	"slices"
)

// Severity of a diagnostic.
type Severity int

const (
	// SeverityWarning never blocks progress unless strict mode escalates it.
	SeverityWarning Severity = iota
	// SeverityError fails the run.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Stage is the pipeline stage that produced a diagnostic.
type Stage int

const (
	// StageParser marks lexer and parser diagnostics.
	StageParser Stage = iota
	// StageValidator marks validator diagnostics.
	StageValidator
)

// Class refines a diagnostic within its stage.
type Class int

const (
	// ClassParse is malformed syntax.
	ClassParse Class = iota
	// ClassValidation is a semantically invalid value, missing key, broken reference or duplicate.
	ClassValidation
	// ClassEnvironment is raised only when environment checking was requested.
	ClassEnvironment
)

// Diagnostic is a single finding attributed to a key and a line.
// Line 0 means the finding concerns the script as a whole.
type Diagnostic struct {
	Severity Severity
	Stage    Stage
	Class    Class
	Key      Key
	Line     int
	Message  string
}

func (d Diagnostic) String() string {
	if d.Key == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Key, d.Message)
}

// Diagnostics is an append-only list of findings.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic is an error.
func (ds Diagnostics) HasErrors() bool {
	return slices.ContainsFunc(ds, func(d Diagnostic) bool { return d.Severity == SeverityError })
}

// Count returns the number of diagnostics matching a stage and severity.
func (ds Diagnostics) Count(stage Stage, sev Severity) int {
	n := 0
	for _, d := range ds {
		if d.Stage == stage && d.Severity == sev {
			n++
		}
	}
	return n
}

// Escalate returns a copy with every warning turned into an error.
func (ds Diagnostics) Escalate() Diagnostics {
	out := slices.Clone(ds)
	for i := range out {
		out[i].Severity = SeverityError
	}
	return out
}

// Sorted returns a copy stably sorted by line. Line-less diagnostics go last.
func (ds Diagnostics) Sorted() Diagnostics {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return sortLine(a.Line) - sortLine(b.Line)
	})
	return out
}

func sortLine(line int) int {
	if line <= 0 {
		return int(^uint(0) >> 2)
	}
	return line
}

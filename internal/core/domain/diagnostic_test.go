package domain_test

import (
	"testing"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_Sorted(t *testing.T) {
	ds := domain.Diagnostics{
		{Line: 0, Key: domain.KeyMount, Message: "no root mount specified"},
		{Line: 7, Key: domain.KeyHostname, Message: "b"},
		{Line: 3, Key: domain.KeyArch, Message: "a"},
		{Line: 7, Key: domain.KeyHostname, Message: "c"},
		{Line: 0, Key: domain.KeyNetwork, Message: "second global"},
	}

	got := ds.Sorted()

	msgs := make([]string, 0, len(got))
	for _, d := range got {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{"a", "b", "c", "no root mount specified", "second global"}, msgs)
	assert.Equal(t, 0, ds[0].Line, "Sorted must not reorder the receiver")
}

func TestDiagnostics_CountsAndEscalate(t *testing.T) {
	ds := domain.Diagnostics{
		{Severity: domain.SeverityWarning, Stage: domain.StageParser},
		{Severity: domain.SeverityError, Stage: domain.StageParser},
		{Severity: domain.SeverityWarning, Stage: domain.StageValidator},
	}

	assert.True(t, ds.HasErrors())
	assert.Equal(t, 1, ds.Count(domain.StageParser, domain.SeverityWarning))
	assert.Equal(t, 1, ds.Count(domain.StageParser, domain.SeverityError))
	assert.Equal(t, 0, ds.Count(domain.StageValidator, domain.SeverityError))

	strict := ds.Escalate()
	assert.Equal(t, 3, strict.Count(domain.StageParser, domain.SeverityError)+strict.Count(domain.StageValidator, domain.SeverityError))
	assert.Equal(t, domain.SeverityWarning, ds[0].Severity)

	assert.False(t, domain.Diagnostics{{Severity: domain.SeverityWarning}}.HasErrors())
}

func TestDiagnostic_String(t *testing.T) {
	d := domain.Diagnostic{Severity: domain.SeverityError, Key: domain.KeyHostname, Message: "value too long"}
	assert.Equal(t, "error: hostname: value too long", d.String())

	d.Key = ""
	d.Severity = domain.SeverityWarning
	assert.Equal(t, "warning: value too long", d.String())
}

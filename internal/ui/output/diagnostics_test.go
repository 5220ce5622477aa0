package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/ui/output"
	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(buf *bytes.Buffer) *termenv.Output {
	return output.NewWithProfile(buf, func() termenv.Profile { return termenv.Ascii })
}

func TestWriteDiagnostics(t *testing.T) {
	ds := domain.Diagnostics{
		{
			Severity: domain.SeverityError, Stage: domain.StageValidator, Class: domain.ClassValidation,
			Key: "rootpw", Message: "you must specify a root password",
		},
		{
			Severity: domain.SeverityWarning, Stage: domain.StageValidator, Class: domain.ClassValidation,
			Key: "pkginstall", Line: 7, Message: "package bash has already been specified",
		},
		{
			Severity: domain.SeverityError, Stage: domain.StageParser, Class: domain.ClassParse,
			Key: "hostname", Line: 3, Message: "hostname must be 320 characters or less",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, output.WriteDiagnostics(plain(&buf), ds))

	g := goldie.New(t)
	g.Assert(t, "diagnostics", buf.Bytes())
}

func TestWriteDiagnostics_CleanRunStillSummarises(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteDiagnostics(plain(&buf), nil))
	assert.Equal(t, "parser: 0 error(s), 0 warning(s)\nvalidator: 0 failure(s)\n", buf.String())
}

func TestFormatDiagnostic_Colour(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, func() termenv.Profile { return termenv.ANSI })

	line := output.FormatDiagnostic(out, domain.Diagnostic{
		Severity: domain.SeverityError, Key: "mount", Line: 2, Message: "no root mount specified",
	})
	assert.True(t, strings.HasPrefix(line, "installfile:2: \x1b["), "severity should be coloured: %q", line)
	assert.True(t, strings.HasSuffix(line, ": mount: no root mount specified"))
}

package output

import (
	"fmt"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/ui/style"
	"github.com/muesli/termenv"
)

// WriteDiagnostics prints one line per diagnostic, sorted by line, followed by
// the parser and validator summaries. The summaries are printed even when
// every count is zero.
func WriteDiagnostics(out *termenv.Output, ds domain.Diagnostics) error {
	var b strings.Builder
	for _, d := range ds.Sorted() {
		b.WriteString(FormatDiagnostic(out, d))
		b.WriteByte('\n')
	}

	parserErrors := ds.Count(domain.StageParser, domain.SeverityError)
	parserWarnings := ds.Count(domain.StageParser, domain.SeverityWarning)
	failures := ds.Count(domain.StageValidator, domain.SeverityError)

	fmt.Fprintf(&b, "parser: %d error(s), %d warning(s)\n", parserErrors, parserWarnings)
	fmt.Fprintf(&b, "validator: %d failure(s)\n", failures)

	_, err := out.WriteString(b.String())
	return err
}

// FormatDiagnostic renders a diagnostic as installfile:<line>: <severity>: <key>: <message>.
// The location is left out for diagnostics about the script as a whole.
func FormatDiagnostic(out *termenv.Output, d domain.Diagnostic) string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "%s:%d: ", domain.ScriptFileName, d.Line)
	}

	severity := out.String(d.Severity.String()).Foreground(style.Foreground(style.ForSeverity(d.Severity)))
	b.WriteString(severity.Bold().String())
	b.WriteString(": ")
	if d.Key != "" {
		b.WriteString(string(d.Key))
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Package parser turns script text into a Document.
package parser

import (
	"fmt"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/engine/lexer"
)

// issue is a finding raised by a key grammar.
type issue struct {
	severity domain.Severity
	message  string
}

func errorf(format string, args ...any) issue {
	return issue{severity: domain.SeverityError, message: fmt.Sprintf(format, args...)}
}

func warnf(format string, args ...any) issue {
	return issue{severity: domain.SeverityWarning, message: fmt.Sprintf(format, args...)}
}

// grammar splits the value text of a key into tokens.
type grammar func(value string) ([]string, []issue)

// Parse reads a script and builds its Document.
//
// Without opts.KeepGoing parsing stops at the first error. Entries whose value
// does not match their key's grammar are reported and left out of the Document.
func Parse(src []byte, opts domain.Options) (*domain.Document, domain.Diagnostics) {
	doc := domain.NewDocument()
	var diags domain.Diagnostics

	report := func(line int, key domain.Key, is issue) {
		diags = append(diags, domain.Diagnostic{
			Severity: is.severity,
			Stage:    domain.StageParser,
			Class:    domain.ClassParse,
			Key:      key,
			Line:     line,
			Message:  is.message,
		})
	}

	for line := range lexer.New(src).Lines() {
		if line.Err != nil {
			report(line.Number, "", errorf("line exceeds maximum length"))
			if !opts.KeepGoing {
				break
			}
			continue
		}

		name, value := splitKey(line.Content)
		key := domain.Key(strings.ToLower(name))
		if value == "" {
			report(line.Number, "", errorf("key '%s' has no value", name))
			if !opts.KeepGoing {
				break
			}
			continue
		}

		g, ok := grammars[key]
		if !ok {
			g = fields
		}
		tokens, issues := g(value)

		failed := false
		for _, is := range issues {
			report(line.Number, key, is)
			failed = failed || is.severity == domain.SeverityError
		}
		if failed {
			if !opts.KeepGoing {
				break
			}
			continue
		}

		doc.Add(domain.Entry{Line: line.Number, Key: key, Raw: line.Content, Tokens: tokens})
	}

	return doc, diags
}

// splitKey separates the key from its value at the first run of spaces or tabs.
func splitKey(content string) (string, string) {
	i := strings.IndexAny(content, " \t")
	if i < 0 {
		return content, ""
	}
	return content[:i], strings.TrimLeft(content[i:], " \t")
}

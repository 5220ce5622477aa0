// Package lexer splits script text into logical lines.
package lexer

import (
	"bytes"
	"iter"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
)

// Line is one non-blank logical line of a script.
type Line struct {
	// Number is the 1-based physical line number.
	Number int
	// Content is the line with comments stripped and surrounding whitespace trimmed.
	Content string
	// Err is set when the line could not be read, for example because it is too long.
	Err error
}

// Reader yields the logical lines of a script.
type Reader struct {
	src []byte
}

// New creates a Reader over src. The slice is not copied.
func New(src []byte) *Reader {
	return &Reader{src: src}
}

// Lines iterates the non-blank lines in order. Each call starts over from the
// first byte.
func (r *Reader) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		rest := r.src
		number := 0
		for len(rest) > 0 {
			number++
			var raw []byte
			if i := bytes.IndexByte(rest, '\n'); i >= 0 {
				raw, rest = rest[:i], rest[i+1:]
			} else {
				raw, rest = rest, nil
			}
			raw = bytes.TrimSuffix(raw, []byte{'\r'})

			if len(raw) > domain.MaxLineLength {
				if !yield(Line{Number: number, Err: domain.Tag(domain.ErrLineTooLong, "line", number)}) {
					return
				}
				continue
			}

			content := strings.TrimSpace(stripComment(string(raw)))
			if content == "" {
				continue
			}
			if !yield(Line{Number: number, Content: content}) {
				return
			}
		}
	}
}

// stripComment removes an unescaped '#' and everything after it.
// "\#" becomes a literal '#', and a '#' between double quotes is kept.
func stripComment(s string) string {
	if !strings.ContainsRune(s, '#') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '#':
			b.WriteByte('#')
			i++
		case c == '"':
			quoted = !quoted
			b.WriteByte(c)
		case c == '#' && !quoted:
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

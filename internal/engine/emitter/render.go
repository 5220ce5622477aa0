package emitter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"go.trai.ch/zerr"
)

// Render writes plan as a POSIX shell script, one fragment per action.
func Render(w io.Writer, plan *domain.Plan) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#!/bin/sh\n# fingerprint: %s\n", plan.Fingerprint)
	for i := range plan.Actions {
		frag, err := Fragment(plan.Actions[i])
		if err != nil {
			return zerr.With(err, "action", i)
		}
		bw.WriteString(frag)
		bw.WriteByte('\n')
	}
	return zerr.Wrap(bw.Flush(), "failed to write plan")
}

// Fragment returns the shell text for a single action.
func Fragment(a domain.Action) (string, error) {
	q := shellquote.Join
	operand := func(i int) string {
		if i < len(a.Operands) {
			return a.Operands[i]
		}
		return ""
	}

	switch a.Op {
	case domain.OpExec:
		if a.Stdin == "" {
			return q(a.Operands...), nil
		}
		return "printf '%s' " + q(a.Stdin) + " | " + q(a.Operands...), nil
	case domain.OpShell:
		return operand(0), nil
	case domain.OpMkdir:
		return "mkdir -p " + q(operand(0)), nil
	case domain.OpWriteFile:
		return redirect(operand(0), a.Stdin, ">"), nil
	case domain.OpAppendFile:
		return redirect(operand(0), a.Stdin, ">>"), nil
	case domain.OpSymlink:
		return "ln -s " + q(operand(0), operand(1)), nil
	case domain.OpCopy:
		return "cp " + q(operand(0), operand(1)), nil
	case domain.OpFetch:
		return "curl -L -o " + q(operand(1), operand(0)), nil
	case domain.OpMove:
		return "mv " + q(operand(0), operand(1)), nil
	case domain.OpChmod:
		return "chmod " + q(operand(0), operand(1)), nil
	}
	return "", domain.Tag(domain.ErrUnknownOperation, "op", int(a.Op))
}

// redirect writes data to file. Multi-line data becomes a quoted
// here-document so it reads the way it lands on disk.
func redirect(file, data, mode string) string {
	body, trailing := strings.CutSuffix(data, "\n")
	switch {
	case trailing && !strings.Contains(body, "\n"):
		return "printf '%s\\n' " + shellquote.Join(body) + " " + mode + " " + shellquote.Join(file)
	case trailing:
		return "cat " + mode + shellquote.Join(file) + " <<'" + domain.HeredocMarker + "'\n" +
			data + domain.HeredocMarker
	default:
		return "printf '%s' " + shellquote.Join(data) + " " + mode + " " + shellquote.Join(file)
	}
}

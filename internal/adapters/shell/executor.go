// Package shell provides the executor that performs plan actions on the host.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"go.trai.ch/zerr"
)

// TargetEnvVar carries the target root to commands run by the executor.
const TargetEnvVar = "HSCRIPT_TARGET"

// Executor implements ports.Executor with os/exec for commands and native
// calls for file operations.
type Executor struct {
	logger ports.Logger
	client *http.Client
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		client: http.DefaultClient,
	}
}

// WithHTTPClient replaces the client used for fetch actions.
func (e *Executor) WithHTTPClient(c *http.Client) *Executor {
	e.client = c
	return e
}

// Execute performs a single action.
func (e *Executor) Execute(
	ctx context.Context,
	action *domain.Action,
	root string,
	stdout, stderr io.Writer,
) error {
	operand := func(i int) string {
		if i < len(action.Operands) {
			return action.Operands[i]
		}
		return ""
	}

	switch action.Op {
	case domain.OpExec:
		if len(action.Operands) == 0 {
			return nil
		}
		return e.run(ctx, action.Operands, action.Stdin, root, stdout, stderr)
	case domain.OpShell:
		return e.run(ctx, []string{"sh", "-c", operand(0)}, action.Stdin, root, stdout, stderr)
	case domain.OpMkdir:
		return wrap(os.MkdirAll(operand(0), domain.DirPerm), "failed to create directory", operand(0))
	case domain.OpWriteFile:
		return wrap(os.WriteFile(operand(0), []byte(action.Stdin), domain.FilePerm), "failed to write file", operand(0))
	case domain.OpAppendFile:
		return wrap(appendFile(operand(0), action.Stdin), "failed to append to file", operand(0))
	case domain.OpSymlink:
		return wrap(os.Symlink(operand(0), operand(1)), "failed to create symlink", operand(1))
	case domain.OpCopy:
		return wrap(copyFile(operand(0), operand(1)), "failed to copy file", operand(0))
	case domain.OpFetch:
		return wrap(e.fetch(ctx, operand(0), operand(1)), "failed to download file", operand(0))
	case domain.OpMove:
		return wrap(os.Rename(operand(0), operand(1)), "failed to move file", operand(0))
	case domain.OpChmod:
		return e.chmod(ctx, operand(0), operand(1), root, stdout, stderr)
	}
	return domain.Tag(domain.ErrUnknownOperation, "op", int(action.Op))
}

func wrap(err error, msg, path string) error {
	if err == nil {
		return nil
	}
	return zerr.With(zerr.Wrap(err, msg), "path", path)
}

func (e *Executor) run(
	ctx context.Context,
	argv []string,
	input, root string,
	stdout, stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // commands come from a validated plan
	cmd.Env = append(os.Environ(), TargetEnvVar+"="+root)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	stderrLog := &logWriter{logger: e.logger}
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, stderrLog)

	err := cmd.Run()
	_ = stderrLog.Close()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", argv[0])
	}
	return nil
}

// chmod applies octal modes natively and hands symbolic modes to chmod(1).
func (e *Executor) chmod(ctx context.Context, mode, path, root string, stdout, stderr io.Writer) error {
	perm, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return e.run(ctx, []string{"chmod", mode, path}, "", root, stdout, stderr)
	}
	return wrap(os.Chmod(path, os.FileMode(perm)), "failed to change mode", path)
}

func (e *Executor) fetch(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.New("unexpected HTTP status"), "status", resp.StatusCode)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func appendFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// logWriter reports each complete line written to it as a warning.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg != "" {
		w.logger.Warn(msg)
	}
}

package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kitsnotes/hollywood/internal/adapters/shell"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) (*shell.Executor, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return shell.NewExecutor(log), log
}

func action(op domain.OperationKind, stdin string, operands ...string) *domain.Action {
	return &domain.Action{Key: domain.Key("test"), Line: 1, Op: op, Operands: operands, Stdin: stdin}
}

func TestExecutor_Exec(t *testing.T) {
	executor, _ := newExecutor(t)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(),
		action(domain.OpExec, "", "sh", "-c", "echo line1; echo line2"), "/target", &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", stdout.String())
}

func TestExecutor_ExecFeedsStdin(t *testing.T) {
	executor, _ := newExecutor(t)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), action(domain.OpExec, "secret\n", "cat"), "/target", &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "secret\n", stdout.String())
}

func TestExecutor_ExportsTarget(t *testing.T) {
	executor, _ := newExecutor(t)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(),
		action(domain.OpShell, "", `printf '%s' "$HSCRIPT_TARGET"`), "/mnt/target", &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/target", stdout.String())
}

func TestExecutor_StderrIsLogged(t *testing.T) {
	executor, log := newExecutor(t)
	log.EXPECT().Warn("part1part2").Times(1)
	log.EXPECT().Warn("tail").Times(1)

	var stderr bytes.Buffer
	err := executor.Execute(context.Background(),
		action(domain.OpShell, "", "printf part1 >&2; printf 'part2\\n' >&2; printf tail >&2"), "/target", io.Discard, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "part1part2\ntail", stderr.String())
}

func TestExecutor_CommandFailure(t *testing.T) {
	executor, _ := newExecutor(t)

	err := executor.Execute(context.Background(), action(domain.OpShell, "", "exit 3"), "/target", io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Canceled(t *testing.T) {
	executor, _ := newExecutor(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Execute(ctx, action(domain.OpExec, "", "sleep", "5"), "/target", io.Discard, io.Discard)
	require.Error(t, err)
}

func TestExecutor_FileOperations(t *testing.T) {
	executor, _ := newExecutor(t)
	ctx := context.Background()
	dir := t.TempDir()

	sub := filepath.Join(dir, "etc", "conf.d")
	conf := filepath.Join(sub, "net")
	steps := []*domain.Action{
		action(domain.OpMkdir, "", sub),
		action(domain.OpWriteFile, "first\n", conf),
		action(domain.OpAppendFile, "second\n", conf),
		action(domain.OpCopy, "", conf, filepath.Join(dir, "copy")),
		action(domain.OpMove, "", filepath.Join(dir, "copy"), filepath.Join(dir, "moved")),
		action(domain.OpSymlink, "", "moved", filepath.Join(dir, "link")),
		action(domain.OpChmod, "", "600", filepath.Join(dir, "moved")),
	}
	for _, a := range steps {
		require.NoError(t, executor.Execute(ctx, a, dir, io.Discard, io.Discard), a.Op.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "link"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))

	_, err = os.Stat(filepath.Join(dir, "copy"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	info, err := os.Stat(filepath.Join(dir, "moved"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	target, err := os.Readlink(filepath.Join(dir, "link"))
	require.NoError(t, err)
	assert.Equal(t, "moved", target)
}

func TestExecutor_SymbolicChmod(t *testing.T) {
	executor, _ := newExecutor(t)
	file := filepath.Join(t.TempDir(), "script")
	require.NoError(t, os.WriteFile(file, []byte("#!/bin/sh\n"), 0o644))

	err := executor.Execute(context.Background(), action(domain.OpChmod, "", "+x", file), "/target", io.Discard, io.Discard)
	require.NoError(t, err)

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}

func TestExecutor_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/key.pub" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "PUBLIC KEY")
	}))
	defer srv.Close()

	executor, _ := newExecutor(t)
	executor.WithHTTPClient(srv.Client())
	dir := t.TempDir()
	dst := filepath.Join(dir, "key.pub")

	err := executor.Execute(context.Background(), action(domain.OpFetch, "", srv.URL+"/key.pub", dst), dir, io.Discard, io.Discard)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "PUBLIC KEY", string(data))

	err = executor.Execute(context.Background(),
		action(domain.OpFetch, "", srv.URL+"/missing", filepath.Join(dir, "missing")), dir, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download file")
}

func TestExecutor_UnknownOperation(t *testing.T) {
	executor, _ := newExecutor(t)

	err := executor.Execute(context.Background(), action(domain.OperationKind(99), ""), "/target", io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrUnknownOperation)
}

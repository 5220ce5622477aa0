package logger_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/kitsnotes/hollywood/internal/adapters/logger"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func newLogger(buf *bytes.Buffer) *logger.Logger {
	lg := logger.New()
	lg.SetProfile(func() termenv.Profile { return termenv.Ascii })
	lg.SetOutput(buf)
	return lg
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := newLogger(&buf)

	lg.Info("hostname: set hostname to 'box'")
	lg.Warn("sfdisk: partition table changed")

	assert.Equal(t, "● hostname: set hostname to 'box'\n! sfdisk: partition table changed\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	var buf bytes.Buffer
	lg := newLogger(&buf)

	cause := zerr.With(zerr.Wrap(os.ErrPermission, "command failed"), "exit_code", 1)
	lg.Error(zerr.With(zerr.Wrap(cause, "runner failed"), "target", "/target"))

	want := "✗ Error: runner failed\n" +
		"       target: /target\n\n" +
		"  Caused by:\n" +
		"    → command failed\n" +
		"      exit_code: 1\n" +
		"    → permission denied\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf).Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := newLogger(&buf)
	lg.SetJSON(true)

	lg.Info("runner: performing 3 actions on /target")
	lg.Error(domain.Tag(domain.ErrActionFailed, "line", 4))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info, failure map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	require.NoError(t, json.Unmarshal(lines[1], &failure))

	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "runner: performing 3 actions on /target", info["msg"])
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "operation failed", failure["msg"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := newLogger(&buf)
	lg.SetJSON(true)
	lg.SetJSON(false)

	lg.Warn(fmt.Sprintf("%d warnings", 2))
	assert.Equal(t, "! 2 warnings\n", buf.String())
}

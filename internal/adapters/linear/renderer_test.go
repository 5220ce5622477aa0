package linear_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kitsnotes/hollywood/internal/adapters/linear"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func plain() linear.Option {
	return linear.WithProfile(func() termenv.Profile { return termenv.Ascii })
}

func TestRenderer_ActionLifecycle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, plain())
	require.NoError(t, r.Start(context.Background()))

	r.OnPlanEmit([]string{"a1", "a2"}, map[string]string{"a1": "mkfs:9 exec", "a2": "mount:3 exec"})

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.OnActionStart("a1", "mkfs:9 exec", start)
	r.OnActionLog("a1", []byte("first line\nsecond line\n"))
	r.OnActionComplete("a1", start.Add(100*time.Millisecond), nil)

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	assert.Equal(t, "[mkfs:9 exec] first line\n[mkfs:9 exec] second line\n", stdout.String())
	assert.Equal(t,
		"Performing 2 action(s)\n"+
			"[mkfs:9 exec] Starting...\n"+
			"[mkfs:9 exec] ✓ Completed in 100ms\n",
		stderr.String())
}

func TestRenderer_PartialLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, plain())

	start := time.Now()
	r.OnActionStart("a1", "pkginstall:4 exec", start)

	r.OnActionLog("a1", []byte("partial"))
	assert.Empty(t, stdout.String(), "partial line should not be printed immediately")

	r.OnActionLog("a1", []byte(" line\r\n"))
	assert.Equal(t, "[pkginstall:4 exec] partial line\n", stdout.String())

	r.OnActionLog("a1", []byte("unflushed"))
	r.OnActionComplete("a1", start.Add(50*time.Millisecond), nil)
	assert.Equal(t, "[pkginstall:4 exec] partial line\n[pkginstall:4 exec] unflushed\n", stdout.String())
}

func TestRenderer_StopFlushes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, plain())

	r.OnActionStart("a1", "fs:8 exec", time.Now())
	r.OnActionLog("a1", []byte("mke2fs 1.47.0"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[fs:8 exec] mke2fs 1.47.0\n", stdout.String())
}

func TestRenderer_ActionError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, plain())

	start := time.Now()
	r.OnActionStart("a1", "disklabel:2 exec", start)
	r.OnActionComplete("a1", start.Add(2*time.Second), zerr.New("command failed"))

	assert.Contains(t, stderr.String(), "[disklabel:2 exec] ✗ Failed after 2s: command failed\n")
}

func TestRenderer_UnknownActionIsIgnored(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, plain())

	r.OnActionLog("missing", []byte("line\n"))
	r.OnActionComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnActionStart("a1", "hostname:1 write", start)
	r.OnActionComplete("a1", start.Add(time.Millisecond), nil)

	assert.False(t, strings.Contains(stderr.String(), "\x1b["), "expected no ANSI codes with NO_COLOR, got: %q", stderr.String())
}

func TestRenderer_Colour(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnActionStart("a1", "hostname:1 write", start)
	r.OnActionComplete("a1", start.Add(time.Millisecond), nil)

	assert.Contains(t, stderr.String(), "\x1b[")
}

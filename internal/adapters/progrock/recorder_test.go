package progrock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitsnotes/hollywood/internal/adapters/progrock"
	"github.com/kitsnotes/hollywood/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRecorder_ForwardsToDisplay(t *testing.T) {
	ctrl := gomock.NewController(t)
	display := mocks.NewMockRenderer(ctrl)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	failure := errors.New("exit status 1")

	gomock.InOrder(
		display.EXPECT().Start(gomock.Any()).Return(nil),
		display.EXPECT().OnPlanEmit([]string{"a1", "a2"}, gomock.Any()),
		display.EXPECT().OnActionStart("a1", "mkfs:9 exec", start),
		display.EXPECT().OnActionLog("a1", []byte("done\n")),
		display.EXPECT().OnActionComplete("a1", start.Add(time.Second), nil),
		display.EXPECT().OnActionStart("a2", "mount:3 exec", start),
		display.EXPECT().OnActionComplete("a2", start.Add(time.Second), failure),
		display.EXPECT().Stop().Return(nil),
		display.EXPECT().Wait().Return(nil),
	)

	r := progrock.New(display)
	require.NoError(t, r.Start(context.Background()))

	r.OnPlanEmit([]string{"a1", "a2"}, map[string]string{"a1": "mkfs:9 exec", "a2": "mount:3 exec"})
	r.OnActionStart("a1", "mkfs:9 exec", start)
	assert.Equal(t, 1, r.Pending())
	r.OnActionLog("a1", []byte("done\n"))
	r.OnActionComplete("a1", start.Add(time.Second), nil)
	r.OnActionStart("a2", "mount:3 exec", start)
	r.OnActionComplete("a2", start.Add(time.Second), failure)
	assert.Equal(t, 0, r.Pending())

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRecorder_LogForUnknownAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	display := mocks.NewMockRenderer(ctrl)
	display.EXPECT().OnActionLog("missing", []byte("x"))

	r := progrock.New(display)
	r.OnActionLog("missing", []byte("x"))
	assert.Equal(t, 0, r.Pending())
}

package runner_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports/mocks"
	"github.com/kitsnotes/hollywood/internal/engine/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newPlan() *domain.Plan {
	doc := domain.NewDocument()
	ref := doc.Add(domain.Entry{Line: 1, Key: domain.KeyHostname, Tokens: []string{"box"}})

	plan := domain.NewPlan(doc)
	plan.Append(ref, 1, domain.OpExec, "", "hostname", "box")
	plan.Append(ref, 1, domain.OpMkdir, "", "/target/etc")
	plan.Append(ref, 1, domain.OpWriteFile, "box", "/target/etc/hostname")
	return plan
}

type fixture struct {
	executor *mocks.MockExecutor
	renderer *mocks.MockRenderer
	runner   *runner.Runner
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	f := fixture{
		executor: mocks.NewMockExecutor(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
	}
	f.runner = runner.New(f.executor, f.renderer, log)
	return f
}

func TestRun_Success(t *testing.T) {
	f := setup(t)
	plan := newPlan()
	a := plan.Actions

	f.renderer.EXPECT().OnPlanEmit(
		[]string{a[0].ID, a[1].ID, a[2].ID},
		map[string]string{
			a[0].ID: "hostname:1 exec",
			a[1].ID: "hostname:1 mkdir",
			a[2].ID: "hostname:1 write",
		},
	)
	f.renderer.EXPECT().OnActionStart(gomock.Any(), gomock.Any(), gomock.Any()).Times(3)
	f.renderer.EXPECT().OnActionComplete(gomock.Any(), gomock.Any(), nil).Times(3)
	f.renderer.EXPECT().OnActionLog(a[0].ID, []byte("box\n"))

	var ran []domain.OperationKind
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), "/target", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, action *domain.Action, _ string, stdout, _ io.Writer) error {
			ran = append(ran, action.Op)
			if action.Op == domain.OpExec {
				_, _ = stdout.Write([]byte("box\n"))
			}
			return nil
		}).Times(3)

	require.NoError(t, f.runner.Run(context.Background(), plan, "/target"))
	assert.Equal(t, []domain.OperationKind{domain.OpExec, domain.OpMkdir, domain.OpWriteFile}, ran)
	for _, action := range a {
		assert.Equal(t, runner.StatusCompleted, f.runner.Status(action.ID))
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	f := setup(t)
	plan := newPlan()
	a := plan.Actions
	boom := errors.New("boom")

	f.renderer.EXPECT().OnPlanEmit(gomock.Any(), gomock.Any())
	f.renderer.EXPECT().OnActionStart(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	f.renderer.EXPECT().OnActionComplete(a[0].ID, gomock.Any(), nil)
	f.renderer.EXPECT().OnActionComplete(a[1].ID, gomock.Any(), boom)

	gomock.InOrder(
		f.executor.EXPECT().Execute(gomock.Any(), &a[0], "/target", gomock.Any(), gomock.Any()).Return(nil),
		f.executor.EXPECT().Execute(gomock.Any(), &a[1], "/target", gomock.Any(), gomock.Any()).Return(boom),
	)

	err := f.runner.Run(context.Background(), plan, "/target")
	require.ErrorIs(t, err, domain.ErrActionFailed)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, runner.StatusCompleted, f.runner.Status(a[0].ID))
	assert.Equal(t, runner.StatusFailed, f.runner.Status(a[1].ID))
	assert.Equal(t, runner.StatusPending, f.runner.Status(a[2].ID))
}

func TestRun_RejectsTamperedPlan(t *testing.T) {
	f := setup(t)
	plan := newPlan()
	plan.Actions[0].Operands = []string{"rm", "-rf", "/"}

	err := f.runner.Run(context.Background(), plan, "/target")
	require.ErrorIs(t, err, domain.ErrPlanDecodeFailed)
}

func TestRun_Canceled(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.renderer.EXPECT().OnPlanEmit(gomock.Any(), gomock.Any())

	err := f.runner.Run(ctx, newPlan(), "/target")
	require.ErrorIs(t, err, context.Canceled)
}

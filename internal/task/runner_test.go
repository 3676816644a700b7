package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcTask runs fn when executed.
type funcTask struct {
	id uuid.UUID
	fn func(ctx context.Context) error
}

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), fn: fn}
}

func (t *funcTask) ID() uuid.UUID                     { return t.id }
func (t *funcTask) Type() string                      { return "test" }
func (t *funcTask) Execute(ctx context.Context) error { return t.fn(ctx) }

func newTestRunner(t *testing.T, cfg TaskRunnerConfig) *TaskRunner {
	t.Helper()
	l, _ := logger.GetTestLogger(t)
	return NewTaskRunner(cfg, l)
}

func TestTaskRunnerExecutesSubmittedTasks(t *testing.T) {
	runner := newTestRunner(t, TaskRunnerConfig{WorkerCount: 3, QueueSize: 10})
	runner.Start()

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, runner.Submit(context.Background(), newFuncTask(func(context.Context) error {
			count.Add(1)
			return nil
		})))
	}

	require.NoError(t, runner.Stop(context.Background()))
	assert.Equal(t, int32(10), count.Load(), "Stop must drain queued tasks")
}

func TestTaskRunnerQueueFull(t *testing.T) {
	runner := newTestRunner(t, TaskRunnerConfig{WorkerCount: 1, QueueSize: 1})

	noop := func(context.Context) error { return nil }
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(noop)))

	err := runner.Submit(context.Background(), newFuncTask(noop))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskRunnerRejectsAfterStop(t *testing.T) {
	runner := newTestRunner(t, TaskRunnerConfig{WorkerCount: 2, QueueSize: 100})
	runner.Start()
	require.NoError(t, runner.Stop(context.Background()))
	require.NoError(t, runner.Stop(context.Background()), "Stop is idempotent")

	err := runner.Submit(context.Background(), newFuncTask(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestTaskRunnerSubmitCanceledContext(t *testing.T) {
	runner := newTestRunner(t, TaskRunnerConfig{WorkerCount: 2, QueueSize: 100})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Submit(ctx, newFuncTask(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskRunnerErrorHandler(t *testing.T) {
	runner := newTestRunner(t, TaskRunnerConfig{WorkerCount: 1, QueueSize: 4})

	var mu sync.Mutex
	var failures []error
	runner.SetErrorHandler(func(_ Task, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	})
	runner.Start()

	boom := errors.New("boom")
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(func(context.Context) error { return boom })))
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(func(context.Context) error { panic("kaboom") })))
	require.NoError(t, runner.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0], boom)
	assert.Contains(t, failures[1].Error(), "kaboom")
}

func TestTaskRunnerStopTimeout(t *testing.T) {
	runner := newTestRunner(t, TaskRunnerConfig{WorkerCount: 1, QueueSize: 1})
	runner.Start()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(func(context.Context) error {
		close(started)
		<-release
		return nil
	})))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := runner.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestNewTaskRunnerAppliesMinimums(t *testing.T) {
	l, buf := logger.GetTestLogger(t)
	runner := NewTaskRunner(TaskRunnerConfig{}, l)

	assert.Equal(t, 1, runner.config.WorkerCount)
	assert.Equal(t, 1, runner.config.QueueSize)
	logger.AssertLogContains(t, buf, "invalid worker count")
}

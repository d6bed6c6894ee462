package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/jobs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Handle(ctx context.Context, cmd commands.SimulateTrackingCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// blockingRunner holds every simulation until release is closed.
type blockingRunner struct {
	release chan struct{}
	mu      sync.Mutex
	seen    []kernel.UUID
}

func (r *blockingRunner) Handle(_ context.Context, cmd commands.SimulateTrackingCommand) error {
	<-r.release
	r.mu.Lock()
	r.seen = append(r.seen, cmd.ShipmentID())
	r.mu.Unlock()
	return nil
}

func (r *blockingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func TestTrackingDispatcher_RunsScheduledShipments(t *testing.T) {
	runner := &MockRunner{}
	first, second := kernel.NewUUID(), kernel.NewUUID()

	var wg sync.WaitGroup
	wg.Add(2)
	runner.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SimulateTrackingCommand) bool {
		return cmd.ShipmentID().IsEqual(first)
	})).Run(func(mock.Arguments) { wg.Done() }).Return(nil).Once()
	runner.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SimulateTrackingCommand) bool {
		return cmd.ShipmentID().IsEqual(second)
	})).Run(func(mock.Arguments) { wg.Done() }).Return(errors.New("db down")).Once()

	d := jobs.NewTrackingDispatcher(runner, 4, 2, zerolog.Nop())
	d.Start()

	assert.True(t, d.Schedule(first))
	assert.True(t, d.Schedule(second))
	wg.Wait()

	d.Stop(context.Background())
	runner.AssertExpectations(t)
}

func TestTrackingDispatcher_DropsWhenQueueIsFull(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	d := jobs.NewTrackingDispatcher(runner, 1, 1, zerolog.Nop())
	d.Start()

	// The worker takes the first id and blocks, the second fills the queue.
	require.True(t, d.Schedule(kernel.NewUUID()))
	require.Eventually(t, func() bool { return d.Schedule(kernel.NewUUID()) }, time.Second, 5*time.Millisecond)
	assert.False(t, d.Schedule(kernel.NewUUID()))

	close(runner.release)
	d.Stop(context.Background())
	assert.Equal(t, 2, runner.count())
}

func TestTrackingDispatcher_RejectsAfterStop(t *testing.T) {
	d := jobs.NewTrackingDispatcher(&MockRunner{}, 1, 1, zerolog.Nop())
	d.Start()
	d.Stop(context.Background())
	d.Stop(context.Background())

	assert.False(t, d.Schedule(kernel.NewUUID()))
}

type MockResumer struct {
	mock.Mock
}

func (m *MockResumer) Handle(ctx context.Context, cmd commands.ResumeSideEffectsCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func TestResumeSideEffectsJob_Run(t *testing.T) {
	resumer := &MockResumer{}
	resumer.On("Handle", mock.Anything, mock.AnythingOfType("commands.ResumeSideEffectsCommand")).
		Return(errors.New("listing failed")).Once()

	job := jobs.NewResumeSideEffectsJob(resumer, "", zerolog.Nop())
	job.Run()

	resumer.AssertExpectations(t)
}

func TestResumeSideEffectsJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewResumeSideEffectsJob(&MockResumer{}, "not a cron expression", zerolog.Nop())
	require.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	d := jobs.NewTrackingDispatcher(&MockRunner{}, 1, 1, zerolog.Nop())
	job := jobs.NewResumeSideEffectsJob(&MockResumer{}, "0 0 0 1 1 *", zerolog.Nop())
	manager := jobs.NewJobManager(d, job)

	require.NoError(t, manager.StartAll())
	manager.StopAll(context.Background())

	assert.False(t, d.Schedule(kernel.NewUUID()))
}

func TestJobManager_StartFailureStopsDispatcher(t *testing.T) {
	d := jobs.NewTrackingDispatcher(&MockRunner{}, 1, 1, zerolog.Nop())
	job := jobs.NewResumeSideEffectsJob(&MockResumer{}, "bogus", zerolog.Nop())

	require.Error(t, jobs.NewJobManager(d, job).StartAll())
	assert.False(t, d.Schedule(kernel.NewUUID()))
}

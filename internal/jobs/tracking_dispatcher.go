package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	DefaultQueueSize = 256
	DefaultWorkers   = 4

	simulationTimeout = 30 * time.Second
)

// TrackingDispatcher runs tracking simulations in the background after start-transit commits.
// The queue is bounded: when it is full a shipment is dropped and left to ResumeSideEffectsJob.
type TrackingDispatcher struct {
	runner  commands.TrackingRunner
	queue   chan kernel.UUID
	workers int
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

var _ commands.TrackingScheduler = (*TrackingDispatcher)(nil)

func NewTrackingDispatcher(
	runner commands.TrackingRunner,
	queueSize, workers int,
	log zerolog.Logger,
) *TrackingDispatcher {
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &TrackingDispatcher{
		runner:  runner,
		queue:   make(chan kernel.UUID, queueSize),
		workers: workers,
		log:     logger.Component(log, "tracking_dispatcher"),
	}
}

// Start launches the workers. It must be called once.
func (d *TrackingDispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	for range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for id := range d.queue {
				d.simulate(ctx, id)
			}
		}()
	}

	d.log.Info().Int("workers", d.workers).Int("queue", cap(d.queue)).Msg("tracking dispatcher started")
}

// Schedule enqueues a shipment without blocking.
func (d *TrackingDispatcher) Schedule(shipmentID kernel.UUID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return false
	}

	select {
	case d.queue <- shipmentID:
		return true
	default:
		d.log.Warn().Str("shipment_id", shipmentID.String()).Msg("tracking queue full, left to retry job")
		return false
	}
}

// Stop refuses new work, drains the queue and waits for workers until ctx expires.
// Simulations still running when ctx expires are cancelled.
func (d *TrackingDispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.log.Warn().Msg("tracking dispatcher stop timed out")
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.log.Info().Msg("tracking dispatcher stopped")
}

func (d *TrackingDispatcher) simulate(parent context.Context, id kernel.UUID) {
	ctx, cancel := context.WithTimeout(parent, simulationTimeout)
	defer cancel()

	cmd, err := commands.NewSimulateTrackingCommand(id)
	if err != nil {
		d.log.Error().Err(err).Msg("invalid tracking task")
		return
	}

	if err = d.runner.Handle(ctx, cmd); err != nil {
		if !errors.Is(err, errs.ErrDependencyUnavailable) {
			err = errs.NewDependencyUnavailableError("tracking simulation", err)
		}
		d.log.Warn().Err(err).Str("shipment_id", id.String()).Msg("tracking simulation failed")
		return
	}

	d.log.Debug().Str("shipment_id", id.String()).Msg("tracking simulated")
}

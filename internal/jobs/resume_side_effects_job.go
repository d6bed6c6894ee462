package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultResumeSchedule runs every 30 seconds.
const DefaultResumeSchedule = "*/30 * * * * *"

// SideEffectsResumer is satisfied by commands.ResumeSideEffectsCommandHandler.
type SideEffectsResumer interface {
	Handle(ctx context.Context, cmd commands.ResumeSideEffectsCommand) error
}

// ResumeSideEffectsJob re-runs tracking simulations and sales-note issuing that did not
// happen after their transition committed. Overlapping runs are skipped.
type ResumeSideEffectsJob struct {
	handler  SideEffectsResumer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	running  atomic.Bool
	log      zerolog.Logger
}

func NewResumeSideEffectsJob(handler SideEffectsResumer, schedule string, log zerolog.Logger) *ResumeSideEffectsJob {
	if schedule == "" {
		schedule = DefaultResumeSchedule
	}
	return &ResumeSideEffectsJob{
		handler:  handler,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithSeconds()),
		log:      logger.Component(log, "resume_side_effects_job"),
	}
}

// Start registers the schedule. An invalid cron expression is returned as an error.
func (j *ResumeSideEffectsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Str("schedule", j.schedule).Msg("resume side effects job started")
	return nil
}

// Run performs one pass. It is exported so the pass can be triggered outside the schedule.
func (j *ResumeSideEffectsJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		j.log.Debug().Msg("previous run still in progress")
		return
	}
	defer j.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.handler.Handle(ctx, commands.NewResumeSideEffectsCommand()); err != nil {
		j.log.Error().Err(err).Msg("resume side effects failed")
	}
}

// Stop waits for a running pass to finish.
func (j *ResumeSideEffectsJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info().Msg("resume side effects job stopped")
}

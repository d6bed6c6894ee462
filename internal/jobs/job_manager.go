package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates all background work of the service.
// Provides a unified interface to start and stop the tracking dispatcher and scheduled jobs.
type JobManager struct {
	dispatcher *TrackingDispatcher
	resumeJob  *ResumeSideEffectsJob
}

// NewJobManager takes already built components so they can share handlers with the HTTP layer.
func NewJobManager(dispatcher *TrackingDispatcher, resumeJob *ResumeSideEffectsJob) *JobManager {
	return &JobManager{
		dispatcher: dispatcher,
		resumeJob:  resumeJob,
	}
}

// StartAll starts the dispatcher and then the scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	jm.dispatcher.Start()

	if err := jm.resumeJob.Start(); err != nil {
		// Stop already started workers if this one fails
		jm.dispatcher.Stop(context.Background())
		return fmt.Errorf("failed to start resume side effects job: %w", err)
	}

	return nil
}

// StopAll stops the scheduled jobs first so they do not feed a stopped dispatcher.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.resumeJob.Stop()
	jm.dispatcher.Stop(ctx)
}

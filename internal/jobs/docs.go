// Package jobs provides the background work of the shipment service.
//
// # Components
//
// 1. TrackingDispatcher - bounded in-process queue with worker goroutines. Start-transit hands
// the shipment id over after its transaction commits and a worker writes the simulated route.
// 2. ResumeSideEffectsJob - cron job (github.com/robfig/cron/v3, seconds field enabled) that
// simulates tracking for in-transit shipments without points and issues missing sales notes.
//
// # Usage
//
//	dispatcher := jobs.NewTrackingDispatcher(simulateHandler, cfg.TrackingQueueSize, cfg.TrackingWorkers, log)
//	resume := jobs.NewResumeSideEffectsJob(resumeHandler, cfg.TrackingRetrySchedule, log)
//	jobManager := jobs.NewJobManager(dispatcher, resume)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// # Error Handling
//
// - A full queue drops the task; the next resume pass picks the shipment up
// - Simulation failures are logged as dependency unavailable and never returned to callers
// - A resume pass is skipped while the previous one is still running
package jobs

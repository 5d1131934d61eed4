package jobs

import (
	"fmt"
	"log/slog"

	"fueldispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates the application's scheduled jobs behind one
// start/stop interface.
type JobManager struct {
	intakeSyncJob *IntakeSyncJob
	delayWatchJob *DelayWatchJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	syncIntakeOrdersHandler commands.SyncIntakeOrdersCommandHandler,
	reportDelayedDeliveriesHandler commands.ReportDelayedDeliveriesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		intakeSyncJob: NewIntakeSyncJob(syncIntakeOrdersHandler, logger),
		delayWatchJob: NewDelayWatchJob(reportDelayedDeliveriesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.intakeSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start intake sync job: %w", err)
	}
	if err := jm.delayWatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start delay watch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.intakeSyncJob.Stop()
	jm.delayWatchJob.Stop()
}

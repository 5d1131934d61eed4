package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fueldispatch/internal/core/application/usecases/commands"
)

// IntakeSyncJob polls the order-intake service on a schedule and imports new
// pending orders. Runs every 30 seconds; an intake outage only logs, the
// next tick tries again.
type IntakeSyncJob struct {
	handler commands.SyncIntakeOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewIntakeSyncJob creates the polling job over the sync handler.
func NewIntakeSyncJob(handler commands.SyncIntakeOrdersCommandHandler, logger *slog.Logger) *IntakeSyncJob {
	return &IntakeSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "intake_sync_job"),
	}
}

// Start begins polling the intake service every 30 seconds.
func (j *IntakeSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		imported, err := j.handler.Handle(ctx, commands.NewSyncIntakeOrdersCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Intake sync failed", "error", err)
			return
		}

		if imported > 0 {
			j.logger.InfoContext(ctx, "Imported intake orders", "count", imported)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Intake sync job started (running every 30 seconds)")
	return nil
}

// Stop stops the polling job.
func (j *IntakeSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Intake sync job stopped")
}

package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fueldispatch/internal/core/application/usecases/commands"
)

// DelayWatchJob scans the in-transit orders once a minute and reports the
// ones running late to the operations mailbox.
type DelayWatchJob struct {
	handler commands.ReportDelayedDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDelayWatchJob creates the delay scan job over the report handler.
func NewDelayWatchJob(handler commands.ReportDelayedDeliveriesCommandHandler, logger *slog.Logger) *DelayWatchJob {
	return &DelayWatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delay_watch_job"),
	}
}

// Start begins scanning for delayed deliveries every minute.
func (j *DelayWatchJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		notified, err := j.handler.Handle(ctx, commands.NewReportDelayedDeliveriesCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Delay scan failed", "error", err)
			return
		}

		if notified > 0 {
			j.logger.InfoContext(ctx, "Reported delayed deliveries", "count", notified)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delay watch job started (running every minute)")
	return nil
}

// Stop stops the delay scan job.
func (j *DelayWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delay watch job stopped")
}

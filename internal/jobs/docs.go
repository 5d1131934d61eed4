// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager,
// which offers a single start/stop interface for the application bootstrap.
//
// # Available Jobs
//
// 1. IntakeSyncJob - Polls the order-intake service every 30 seconds and
// imports new pending orders into the local pool.
//
// 2. DelayWatchJob - Scans in-transit orders every minute and reports the
// ones running late to the operations mailbox.
//
// # Error Handling
//
// A failed pass is logged and dropped; the next tick retries from scratch.
// The intake import is idempotent (records are deduplicated by order number)
// and the delay scan reports each order once, so retries never duplicate
// work.
package jobs

// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. StockAuditJob compares every SKU quantity with its ledger balance and
//     raises LedgerDrift and NegativeStock alerts. It never corrects data.
//  2. SnapshotFlushJob writes the in-memory store to its JSON document when
//     the store changed since the previous flush.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(auditHandler, store, jobs.Config{
//		StockAuditSchedule:    "0 */10 * * * *",
//		SnapshotFlushSchedule: "*/30 * * * * *",
//		SnapshotPath:          "data/atelier.json",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(ctx)
//
// # Scheduling
//
// Schedules take six fields, seconds first. A run still in progress when the
// next tick fires makes that tick a no-op. StopAll waits for running jobs and
// then performs one last flush, so a clean shutdown loses no commits.
package jobs

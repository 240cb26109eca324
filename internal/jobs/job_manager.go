package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// Config holds the cron schedules, six fields with seconds. An empty
// schedule disables the job.
type Config struct {
	StockAuditSchedule    string
	SnapshotFlushSchedule string
	SnapshotPath          string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	stockAuditJob    *StockAuditJob
	snapshotFlushJob *SnapshotFlushJob
	logger           *slog.Logger
}

// NewJobManager wires the jobs. snapshots is nil when the backend persists
// on its own, which disables the flush job.
func NewJobManager(
	auditor stockAuditor,
	snapshots SnapshotStore,
	cfg Config,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger.With("component", "job_manager")}

	if cfg.StockAuditSchedule != "" {
		jm.stockAuditJob = NewStockAuditJob(auditor, cfg.StockAuditSchedule, logger)
	}
	if snapshots != nil && cfg.SnapshotFlushSchedule != "" && cfg.SnapshotPath != "" {
		jm.snapshotFlushJob = NewSnapshotFlushJob(snapshots, cfg.SnapshotPath, cfg.SnapshotFlushSchedule, logger)
	}

	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.stockAuditJob != nil {
		if err := jm.stockAuditJob.Start(); err != nil {
			return fmt.Errorf("failed to start stock audit job: %w", err)
		}
	}

	if jm.snapshotFlushJob != nil {
		if err := jm.snapshotFlushJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			if jm.stockAuditJob != nil {
				jm.stockAuditJob.Stop()
			}
			return fmt.Errorf("failed to start snapshot flush job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and writes a final snapshot.
func (jm *JobManager) StopAll(ctx context.Context) error {
	if jm.stockAuditJob != nil {
		jm.stockAuditJob.Stop()
	}

	if jm.snapshotFlushJob == nil {
		return nil
	}
	jm.snapshotFlushJob.Stop()
	if err := jm.snapshotFlushJob.Flush(ctx); err != nil {
		jm.logger.ErrorContext(ctx, "Final snapshot flush failed", "error", err)
		return err
	}
	return nil
}

package jobs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// SnapshotStore is a store that can be written to disk as a whole.
type SnapshotStore interface {
	Version() uint64
	Save(path string) (uint64, error)
}

// SnapshotFlushJob writes the in-memory store to disk when it changed since
// the last flush.
type SnapshotFlushJob struct {
	store    SnapshotStore
	path     string
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	flushed uint64
	written bool
}

func NewSnapshotFlushJob(store SnapshotStore, path, schedule string, logger *slog.Logger) *SnapshotFlushJob {
	return &SnapshotFlushJob{
		store:    store,
		path:     path,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "snapshot_flush_job"),
	}
}

// Start schedules periodic flushes.
func (j *SnapshotFlushJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Flush(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot flush failed", "path", j.path, "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot flush job started", "schedule", j.schedule, "path", j.path)
	return nil
}

// Stop waits for a running flush to finish. It does not flush; callers
// shutting down call Flush afterwards.
func (j *SnapshotFlushJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Snapshot flush job stopped")
}

// Flush saves the store unless the flushed version is still current.
func (j *SnapshotFlushJob) Flush(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.written && j.store.Version() == j.flushed {
		return nil
	}

	version, err := j.store.Save(j.path)
	if err != nil {
		return err
	}

	j.flushed = version
	j.written = true
	j.logger.DebugContext(ctx, "Snapshot flushed", "path", j.path, "version", version)
	return nil
}

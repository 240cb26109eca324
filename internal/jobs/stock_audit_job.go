package jobs

import (
	"context"
	"log/slog"

	"atelier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// stockAuditor is the slice of AuditStockCommandHandler the job needs.
type stockAuditor interface {
	Handle(ctx context.Context, cmd commands.AuditStockCommand) (commands.AuditStockResult, error)
}

// StockAuditJob periodically reconciles SKU quantities with the ledger.
type StockAuditJob struct {
	handler  stockAuditor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStockAuditJob(handler stockAuditor, schedule string, logger *slog.Logger) *StockAuditJob {
	return &StockAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "stock_audit_job"),
	}
}

// Start schedules the audit.
func (j *StockAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stock audit job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running audit to finish.
func (j *StockAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stock audit job stopped")
}

func (j *StockAuditJob) run(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewAuditStockCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stock audit failed", "error", err)
		return
	}

	if len(result.Drifted) > 0 || len(result.Negative) > 0 {
		j.logger.WarnContext(ctx, "Stock audit found issues",
			"checked", result.Checked,
			"drifted", result.Drifted,
			"negative", result.Negative)
		return
	}
	j.logger.DebugContext(ctx, "Stock audit clean", "checked", result.Checked)
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"atelier/internal/core/ports"
)

// AuditStockResult lists the codes that raised an alert.
type AuditStockResult struct {
	Checked  int
	Drifted  []string
	Negative []string
}

// AuditStockCommandHandler compares each SKU quantity with the sum of its
// ledger deltas and raises LedgerDrift on mismatch. SKUs below zero raise
// NegativeStock. Nothing is corrected; an operator decides.
type AuditStockCommandHandler struct {
	snapshots ports.SnapshotReader
	notifier  ports.AlertNotifier
	clock     ports.Clock
	logger    *slog.Logger
}

func NewAuditStockCommandHandler(
	snapshots ports.SnapshotReader,
	notifier ports.AlertNotifier,
	clock ports.Clock,
	logger *slog.Logger,
) AuditStockCommandHandler {
	return AuditStockCommandHandler{
		snapshots: snapshots,
		notifier:  notifier,
		clock:     clock,
		logger:    logger.With("component", "stock_audit"),
	}
}

func (h AuditStockCommandHandler) Handle(ctx context.Context, cmd AuditStockCommand) (AuditStockResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuditStockResult{}, err
	}

	snap, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		return AuditStockResult{}, err
	}

	balances := make(map[string]int, len(snap.SKUs))
	for _, m := range snap.Movements {
		balances[m.Code()] += m.Delta()
	}

	result := AuditStockResult{Checked: len(snap.SKUs)}
	now := h.clock.Now()

	for _, sku := range snap.SKUs {
		balance := balances[sku.Code()]
		delete(balances, sku.Code())

		if balance != sku.Quantity() {
			result.Drifted = append(result.Drifted, sku.Code())
			h.raise(ctx, ports.Alert{
				Kind:    ports.AlertLedgerDrift,
				Subject: sku.Code(),
				Message: fmt.Sprintf("quantity %d, ledger balance %d", sku.Quantity(), balance),
				At:      now,
			})
		}

		if sku.Quantity() < 0 {
			result.Negative = append(result.Negative, sku.Code())
			h.raise(ctx, ports.Alert{
				Kind:    ports.AlertNegativeStock,
				Subject: sku.Code(),
				Message: fmt.Sprintf("%s has %d on hand", sku.Name(), sku.Quantity()),
				At:      now,
			})
		}
	}

	// movements of codes no longer in the catalog
	orphans := make([]string, 0, len(balances))
	for code, balance := range balances {
		if balance != 0 {
			orphans = append(orphans, code)
		}
	}
	sort.Strings(orphans)
	for _, code := range orphans {
		result.Drifted = append(result.Drifted, code)
		h.raise(ctx, ports.Alert{
			Kind:    ports.AlertLedgerDrift,
			Subject: code,
			Message: fmt.Sprintf("ledger balance %d for a code missing from the catalog", balances[code]),
			At:      now,
		})
	}

	return result, nil
}

func (h AuditStockCommandHandler) raise(ctx context.Context, alert ports.Alert) {
	h.logger.WarnContext(ctx, "stock audit finding",
		"kind", string(alert.Kind),
		"code", alert.Subject,
		"detail", alert.Message)
	h.notifier.Notify(ctx, alert)
}

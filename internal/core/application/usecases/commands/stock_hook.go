package commands

import (
	"context"
	"fmt"
	"log/slog"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

// StockHookFailure is one stock effect that could not be applied.
type StockHookFailure struct {
	Effect services.StockEffect
	Err    error
}

// StockHookReport lists what the hook did for one order change.
type StockHookReport struct {
	Applied  []AdjustStockResult
	Failures []StockHookFailure
}

// Failed reports whether any effect was not applied.
func (r StockHookReport) Failed() bool { return len(r.Failures) > 0 }

// StockHook executes planned stock effects of an already committed order
// change. A failing effect is logged and raised as an operator alert; it never
// undoes the order change and does not stop the remaining effects.
type StockHook struct {
	adjuster StockAdjuster
	notifier ports.AlertNotifier
	clock    ports.Clock
	logger   *slog.Logger
}

func NewStockHook(
	adjuster StockAdjuster,
	notifier ports.AlertNotifier,
	clock ports.Clock,
	logger *slog.Logger,
) StockHook {
	return StockHook{
		adjuster: adjuster,
		notifier: notifier,
		clock:    clock,
		logger:   logger.With("component", "stock_hook"),
	}
}

// Apply runs effects in order, with the order id as movement ref.
func (h StockHook) Apply(
	ctx context.Context,
	orderID string,
	from, to order.Status,
	effects []services.StockEffect,
) StockHookReport {
	var report StockHookReport

	notes := fmt.Sprintf("%s -> %s", from, to)
	if from == to {
		notes = "items changed while " + to.String()
	}

	for _, effect := range effects {
		result, err := h.adjust(ctx, orderID, notes, effect)
		if err != nil {
			h.logger.ErrorContext(ctx, "stock side effect failed, order change kept",
				"order_id", orderID,
				"from", from.String(),
				"to", to.String(),
				"reference", effect.Reference,
				"delta", effect.Delta,
				"error", err,
			)
			h.notifier.Notify(ctx, ports.Alert{
				Kind:    ports.AlertHookFailure,
				Subject: orderID,
				Message: fmt.Sprintf("%s: %s %+d not applied: %v", notes, effect.Reference, effect.Delta, err),
				At:      h.clock.Now(),
			})
			report.Failures = append(report.Failures, StockHookFailure{Effect: effect, Err: err})
			continue
		}
		report.Applied = append(report.Applied, result)
	}

	return report
}

func (h StockHook) adjust(
	ctx context.Context,
	orderID, notes string,
	effect services.StockEffect,
) (AdjustStockResult, error) {
	cmd, err := NewAdjustStockCommand(effect.Reference, effect.Delta, effect.Type, orderID, notes)
	if err != nil {
		return AdjustStockResult{}, err
	}
	return h.adjuster.Handle(ctx, cmd)
}

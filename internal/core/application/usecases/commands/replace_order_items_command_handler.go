package commands

import (
	"context"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

// ReplaceOrderItemsCommandHandler swaps an order's items. While the order is
// Shipping, the signed difference per item key is withdrawn or returned so
// the total withdrawn always matches the current list.
type ReplaceOrderItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.Locker
	hook       StockHook
	planner    services.StockEffectPlanner
}

func NewReplaceOrderItemsCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	hook StockHook,
) ReplaceOrderItemsCommandHandler {
	return ReplaceOrderItemsCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		hook:       hook,
		planner:    services.NewStockEffectPlanner(),
	}
}

func (h ReplaceOrderItemsCommandHandler) Handle(
	ctx context.Context,
	cmd ReplaceOrderItemsCommand,
) (OrderChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderChangeResult{}, err
	}

	return editOrder(ctx, h.uowFactory, h.locker, h.hook, cmd.OrderID().String(),
		func(repo ports.OrderRepository) (*order.Order, []services.StockEffect, error) {
			aggregate, err := repo.Get(ctx, cmd.OrderID())
			if err != nil {
				return nil, nil, err
			}

			previous, err := aggregate.ReplaceItems(cmd.Items())
			if err != nil {
				return nil, nil, err
			}

			return aggregate, h.planner.PlanItemChange(aggregate.Status(), previous, aggregate.Items()), nil
		})
}

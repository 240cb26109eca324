package commands

import (
	"context"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

// OrderChangeResult reports an order edit and the stock reconciliation it caused.
type OrderChangeResult struct {
	OrderID string
	Status  order.Status
	Stock   StockHookReport
}

// UpdateOrderCommandHandler edits order details. For a Shipping order without
// an explicit item list, a new product name changes the implicit item, and
// stock is reconciled like an item replacement.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.Locker
	hook       StockHook
	planner    services.StockEffectPlanner
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, locker ports.Locker, hook StockHook) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		hook:       hook,
		planner:    services.NewStockEffectPlanner(),
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (OrderChangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderChangeResult{}, err
	}

	return editOrder(ctx, h.uowFactory, h.locker, h.hook, cmd.OrderID().String(),
		func(repo ports.OrderRepository) (*order.Order, []services.StockEffect, error) {
			aggregate, err := repo.Get(ctx, cmd.OrderID())
			if err != nil {
				return nil, nil, err
			}

			before := aggregate.Items()
			if err = aggregate.UpdateDetails(cmd.Details()); err != nil {
				return nil, nil, err
			}

			return aggregate, h.planner.PlanItemChange(aggregate.Status(), before, aggregate.Items()), nil
		})
}

// editOrder runs edit under the order lock, commits the order and then
// applies the planned stock effects.
func editOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	hook StockHook,
	id string,
	edit func(repo ports.OrderRepository) (*order.Order, []services.StockEffect, error),
) (OrderChangeResult, error) {
	unlock, err := locker.Lock(ctx, ports.OrderLockKey(id))
	if err != nil {
		return OrderChangeResult{}, err
	}
	defer unlockQuietly(ctx, unlock)

	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrderChangeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, effects, err := edit(orderRepo)
	if err != nil {
		return OrderChangeResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return OrderChangeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderChangeResult{}, err
	}

	return OrderChangeResult{
		OrderID: id,
		Status:  aggregate.Status(),
		Stock:   hook.Apply(ctx, id, aggregate.Status(), aggregate.Status(), effects),
	}, nil
}

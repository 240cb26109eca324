package commands

import (
	"context"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

// TransitionOrderResult is the committed status change and what its stock
// side effects did.
type TransitionOrderResult struct {
	OrderID string
	From    order.Status
	To      order.Status
	Stock   StockHookReport
}

// OrderTransitioner is the narrow view of TransitionOrderCommandHandler used
// by bulk and invoice handlers.
type OrderTransitioner interface {
	Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionOrderResult, error)
}

// TransitionOrderCommandHandler changes an order's status under the order
// lock, commits it, and then runs the stock effects of the change.
//
// The status change is final once committed. Stock effects that fail are
// reported in TransitionOrderResult.Stock and raised as alerts; Handle still
// returns a nil error for them.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(id, order.Shipping, "")
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // refused by the transition policy, nothing changed
//	case err != nil:
//	    return err
//	case result.Stock.Failed():
//	    log.Printf("order %s shipped, stock needs attention", result.OrderID)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.Locker
	hook       StockHook
	planner    services.StockEffectPlanner
	policy     order.TransitionPolicy
	clock      ports.Clock
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	hook StockHook,
	policy order.TransitionPolicy,
	clock ports.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		hook:       hook,
		planner:    services.NewStockEffectPlanner(),
		policy:     policy,
		clock:      clock,
	}
}

func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (TransitionOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderResult{}, err
	}

	id := cmd.OrderID().String()
	unlock, err := h.locker.Lock(ctx, ports.OrderLockKey(id))
	if err != nil {
		return TransitionOrderResult{}, err
	}
	defer unlockQuietly(ctx, unlock)

	aggregate, from, err := h.transition(ctx, cmd)
	if err != nil {
		return TransitionOrderResult{}, err
	}

	// the SKU locks are taken while the order lock is held
	effects := h.planner.PlanTransition(from, cmd.To(), aggregate.Items())

	return TransitionOrderResult{
		OrderID: id,
		From:    from,
		To:      cmd.To(),
		Stock:   h.hook.Apply(ctx, id, from, cmd.To(), effects),
	}, nil
}

func (h TransitionOrderCommandHandler) transition(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.Unknown, err
	}

	from, err := aggregate.Transition(cmd.To(), cmd.Reason(), h.policy, h.clock.Now())
	if err != nil {
		return nil, order.Unknown, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Unknown, err
	}

	return aggregate, from, nil
}

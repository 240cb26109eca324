package commands

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// CreateOrderCommandHandler persists a new order in its initial status.
// Creation has no stock effect: pieces leave the workshop on entry to Shipping.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.Locker
	clock      ports.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.Locker,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clock,
	}
}

// Handle returns errs.ErrAlreadyExists when the id is taken.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, ports.OrderLockKey(cmd.OrderID().String()))
	if err != nil {
		return err
	}
	defer unlockQuietly(ctx, unlock)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	_, err = orderRepo.Get(ctx, cmd.OrderID())
	switch {
	case err == nil:
		return errs.NewAlreadyExistsError("order", cmd.OrderID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.Details(), cmd.Items(), cmd.Initial(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

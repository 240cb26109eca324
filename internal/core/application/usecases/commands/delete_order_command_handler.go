package commands

import (
	"context"

	"atelier/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order under its lock.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.Locker
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, locker ports.Locker) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

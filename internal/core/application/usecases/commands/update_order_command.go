package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the editable details of an order: contact,
// address, price, notes, page and product name. Status and items are untouched.
type UpdateOrderCommand struct {
	orderID kernel.OrderID
	details order.Details

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID kernel.OrderID, details order.Details) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID: orderID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.OrderID { return c.orderID }
func (c UpdateOrderCommand) Details() order.Details  { return c.details }

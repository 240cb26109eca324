package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrReplaceOrderItemsCommandIsNotConstructed = errors.New(
	"ReplaceOrderItemsCommand must be created via NewReplaceOrderItemsCommand constructor",
)

// ReplaceOrderItemsCommand swaps an order's item list. For an order that is
// Shipping, the handler reconciles stock by the difference between the old
// and the new list.
type ReplaceOrderItemsCommand struct {
	orderID kernel.OrderID
	items   []order.Item

	guard guard.ConstructorGuard
}

func NewReplaceOrderItemsCommand(orderID kernel.OrderID, items []order.Item) (ReplaceOrderItemsCommand, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			itemsErr = errors.Join(itemsErr, err)
		}
	}

	if err := errors.Join(orderID.Validate(), itemsErr); err != nil {
		return ReplaceOrderItemsCommand{}, err
	}

	out := make([]order.Item, len(items))
	copy(out, items)

	return ReplaceOrderItemsCommand{
		orderID: orderID,
		items:   out,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReplaceOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrReplaceOrderItemsCommandIsNotConstructed)
}

func (c ReplaceOrderItemsCommand) OrderID() kernel.OrderID { return c.orderID }

func (c ReplaceOrderItemsCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a draft order handed over by an order producer.
//
// Example:
//
//	id, err := kernel.NewOrderID("١٠٠٠٠٠٠٠١٢٣٤") // normalized to 100000001234
//	if err != nil {
//	    return err // errs.ErrInvalidID
//	}
//	item, _ := order.NewItem("INV0001", "", 2)
//	cmd, err := NewCreateOrderCommand(id, order.Details{Price: decimal.NewFromInt(25000)},
//	    []order.Item{item}, order.Ready)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	details order.Details
	items   []order.Item
	initial order.Status

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the draft. An Unknown initial status
// means the producer did not choose one and defaults to Ready.
func NewCreateOrderCommand(
	orderID kernel.OrderID,
	details order.Details,
	items []order.Item,
	initial order.Status,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setInitial(initial),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.details = details

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.OrderID { return c.orderID }
func (c CreateOrderCommand) Details() order.Details  { return c.details }
func (c CreateOrderCommand) Initial() order.Status   { return c.initial }

func (c CreateOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setInitial(initial order.Status) error {
	if initial == order.Unknown {
		initial = order.Ready
	}
	if !initial.IsInitial() {
		return errs.NewValueIsInvalidErrorWithCause("initialStatus",
			errors.New("orders start in Processing or Ready"))
	}

	c.initial = initial
	return nil
}

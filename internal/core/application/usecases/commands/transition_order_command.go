package commands

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves one order to a new status.
// Reason is recorded as the return reason when the target is Returned.
type TransitionOrderCommand struct {
	orderID kernel.OrderID
	to      order.Status
	reason  string

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.OrderID, to order.Status, reason string) (TransitionOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), to.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		to:      to,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.OrderID { return c.orderID }
func (c TransitionOrderCommand) To() order.Status        { return c.to }
func (c TransitionOrderCommand) Reason() string          { return c.reason }

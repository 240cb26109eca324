package commands

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrTransitionOrdersCommandIsNotConstructed = errors.New(
	"TransitionOrdersCommand must be created via NewTransitionOrdersCommand constructor",
)

// TransitionOrdersCommand moves several orders to the same status. The ids
// are kept raw so a malformed one is reported with the others instead of
// failing the whole request.
type TransitionOrdersCommand struct {
	orderIDs []string
	to       order.Status
	reason   string

	guard guard.ConstructorGuard
}

func NewTransitionOrdersCommand(orderIDs []string, to order.Status, reason string) (TransitionOrdersCommand, error) {
	var idsErr error
	if len(orderIDs) == 0 {
		idsErr = errs.NewValueIsRequiredError("orderIds")
	}

	if err := errors.Join(idsErr, to.Validate()); err != nil {
		return TransitionOrdersCommand{}, err
	}

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = strings.TrimSpace(id)
	}

	return TransitionOrdersCommand{
		orderIDs: ids,
		to:       to,
		reason:   strings.TrimSpace(reason),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrdersCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrdersCommandIsNotConstructed)
}

func (c TransitionOrdersCommand) OrderIDs() []string {
	out := make([]string, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}

func (c TransitionOrdersCommand) To() order.Status { return c.to }
func (c TransitionOrdersCommand) Reason() string   { return c.reason }

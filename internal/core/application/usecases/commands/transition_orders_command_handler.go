package commands

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
)

// TransitionOrdersItem is the outcome for one id of a bulk transition.
// Err is nil when the status change was committed.
type TransitionOrdersItem struct {
	OrderID string
	Result  TransitionOrderResult
	Err     error
}

// TransitionOrdersCommandHandler applies one transition per id. The set is
// not atomic: every id is attempted and reported on its own.
type TransitionOrdersCommandHandler struct {
	transitioner OrderTransitioner
}

func NewTransitionOrdersCommandHandler(transitioner OrderTransitioner) TransitionOrdersCommandHandler {
	return TransitionOrdersCommandHandler{transitioner: transitioner}
}

// Handle returns an error only for an invalid command; per-id failures are in the items.
func (h TransitionOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrdersCommand,
) ([]TransitionOrdersItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := make([]TransitionOrdersItem, 0, len(cmd.OrderIDs()))
	for _, raw := range cmd.OrderIDs() {
		items = append(items, h.one(ctx, raw, cmd))
	}

	return items, nil
}

func (h TransitionOrdersCommandHandler) one(
	ctx context.Context,
	raw string,
	cmd TransitionOrdersCommand,
) TransitionOrdersItem {
	item := TransitionOrdersItem{OrderID: raw}

	id, err := kernel.NewOrderID(raw)
	if err != nil {
		item.Err = err
		return item
	}
	item.OrderID = id.String()

	single, err := NewTransitionOrderCommand(id, cmd.To(), cmd.Reason())
	if err != nil {
		item.Err = err
		return item
	}

	item.Result, item.Err = h.transitioner.Handle(ctx, single)
	return item
}

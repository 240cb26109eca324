package commands

import (
	"context"
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Reasons an invoice line is skipped.
const (
	SkipInvalidOrderID   = "invalid order id"
	SkipInvalidAmount    = "invalid amount"
	SkipOrderNotFound    = "order not found"
	SkipAlreadyDelivered = "already delivered"
	SkipPriceMismatch    = "price mismatch"
	SkipTransitionFailed = "transition failed"
)

type MatchedInvoiceLine struct {
	OrderID string
	Amount  decimal.Decimal
	Result  TransitionOrderResult
}

type SkippedInvoiceLine struct {
	Line   InvoiceLine
	Reason string
	Detail string
}

type MatchInvoiceResult struct {
	Matched []MatchedInvoiceLine
	Skipped []SkippedInvoiceLine
}

// MatchInvoiceCommandHandler transitions an order to Delivered only when it
// exists and its recorded price equals the invoiced amount. Every other line
// is reported as skipped with a reason; nothing else changes.
type MatchInvoiceCommandHandler struct {
	uowFactory   OrderUoWFactory
	transitioner OrderTransitioner
}

func NewMatchInvoiceCommandHandler(uowFactory OrderUoWFactory, transitioner OrderTransitioner) MatchInvoiceCommandHandler {
	return MatchInvoiceCommandHandler{uowFactory: uowFactory, transitioner: transitioner}
}

func (h MatchInvoiceCommandHandler) Handle(ctx context.Context, cmd MatchInvoiceCommand) (MatchInvoiceResult, error) {
	if err := cmd.Validate(); err != nil {
		return MatchInvoiceResult{}, err
	}

	var result MatchInvoiceResult
	for _, line := range cmd.Lines() {
		matched, skipped, err := h.match(ctx, line)
		if err != nil {
			return result, err
		}
		if skipped != nil {
			result.Skipped = append(result.Skipped, *skipped)
			continue
		}
		result.Matched = append(result.Matched, matched)
	}

	return result, nil
}

// match returns an error only for storage failures; business mismatches are skips.
func (h MatchInvoiceCommandHandler) match(
	ctx context.Context,
	line InvoiceLine,
) (MatchedInvoiceLine, *SkippedInvoiceLine, error) {
	skip := func(reason, detail string) (MatchedInvoiceLine, *SkippedInvoiceLine, error) {
		return MatchedInvoiceLine{}, &SkippedInvoiceLine{Line: line, Reason: reason, Detail: detail}, nil
	}

	id, err := kernel.NewOrderID(line.OrderID)
	if err != nil {
		return skip(SkipInvalidOrderID, err.Error())
	}

	amount, err := kernel.ParseAmount(line.Amount)
	if err != nil {
		return skip(SkipInvalidAmount, err.Error())
	}

	current, err := h.load(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return skip(SkipOrderNotFound, "")
	}
	if err != nil {
		return MatchedInvoiceLine{}, nil, err
	}

	if current.Status() == order.Delivered {
		return skip(SkipAlreadyDelivered, "")
	}
	if !current.Price().Equal(amount) {
		return skip(SkipPriceMismatch, fmt.Sprintf("recorded %s, invoiced %s", current.Price(), amount))
	}

	transition, err := NewTransitionOrderCommand(id, order.Delivered, "")
	if err != nil {
		return MatchedInvoiceLine{}, nil, err
	}

	res, err := h.transitioner.Handle(ctx, transition)
	if err != nil {
		return skip(SkipTransitionFailed, err.Error())
	}

	return MatchedInvoiceLine{OrderID: id.String(), Amount: amount, Result: res}, nil, nil
}

func (h MatchInvoiceCommandHandler) load(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, id)
}

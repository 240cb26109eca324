package commands

import (
	"errors"
	"strings"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrMatchInvoiceCommandIsNotConstructed = errors.New(
	"MatchInvoiceCommand must be created via NewMatchInvoiceCommand constructor",
)

// InvoiceLine is one (order id, amount) pair read from a carrier invoice.
// Both values are raw text and may use Arabic-Indic digits.
type InvoiceLine struct {
	OrderID string
	Amount  string
}

// MatchInvoiceCommand marks invoiced orders Delivered.
type MatchInvoiceCommand struct {
	lines []InvoiceLine

	guard guard.ConstructorGuard
}

func NewMatchInvoiceCommand(lines []InvoiceLine) (MatchInvoiceCommand, error) {
	if len(lines) == 0 {
		return MatchInvoiceCommand{}, errs.NewValueIsRequiredError("lines")
	}

	out := make([]InvoiceLine, len(lines))
	for i, line := range lines {
		out[i] = InvoiceLine{OrderID: strings.TrimSpace(line.OrderID), Amount: strings.TrimSpace(line.Amount)}
	}

	return MatchInvoiceCommand{lines: out, guard: guard.NewConstructorGuard()}, nil
}

func (c MatchInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrMatchInvoiceCommandIsNotConstructed)
}

func (c MatchInvoiceCommand) Lines() []InvoiceLine {
	out := make([]InvoiceLine, len(c.lines))
	copy(out, c.lines)
	return out
}

package commands

import (
	"errors"

	"atelier/internal/pkg/guard"
)

var ErrAuditStockCommandIsNotConstructed = errors.New(
	"AuditStockCommand must be created via NewAuditStockCommand constructor",
)

// AuditStockCommand reconciles every SKU against the movement ledger.
type AuditStockCommand struct {
	guard guard.ConstructorGuard
}

func NewAuditStockCommand() AuditStockCommand {
	return AuditStockCommand{guard: guard.NewConstructorGuard()}
}

func (c AuditStockCommand) Validate() error {
	return c.guard.Validate(ErrAuditStockCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var ErrSetProductionPaidCommandIsNotConstructed = errors.New(
	"SetProductionPaidCommand must be created via NewSetProductionPaidCommand constructor",
)

// SetProductionPaidCommand marks a production entry paid or unpaid.
type SetProductionPaidCommand struct {
	entryID kernel.UUID
	paid    bool

	guard guard.ConstructorGuard
}

func NewSetProductionPaidCommand(entryID kernel.UUID, paid bool) (SetProductionPaidCommand, error) {
	if err := entryID.Validate(); err != nil {
		return SetProductionPaidCommand{}, err
	}

	return SetProductionPaidCommand{entryID: entryID, paid: paid, guard: guard.NewConstructorGuard()}, nil
}

func (c SetProductionPaidCommand) Validate() error {
	return c.guard.Validate(ErrSetProductionPaidCommandIsNotConstructed)
}

func (c SetProductionPaidCommand) EntryID() kernel.UUID { return c.entryID }
func (c SetProductionPaidCommand) Paid() bool           { return c.paid }

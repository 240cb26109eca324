package commands

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrAdjustStockCommandIsNotConstructed = errors.New(
	"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
)

// AdjustStockCommand changes the quantity on hand of one SKU by a signed delta.
// It is the only way stock ever changes: the handler writes a ledger movement
// and the new quantity in one unit of work.
//
// Example:
//
//	cmd, err := NewAdjustStockCommand("Linen dress", -2, inventory.Withdraw, "100000001234", "")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if result.Warning != nil {
//	    log.Printf("stock went negative: %v", result.Warning)
//	}
type AdjustStockCommand struct {
	reference string
	delta     int
	kind      inventory.MovementType
	ref       string
	notes     string

	guard guard.ConstructorGuard
}

// NewAdjustStockCommand validates the request. reference is a SKU code or a
// unique SKU name; ref correlates the movement with its cause.
func NewAdjustStockCommand(
	reference string,
	delta int,
	kind inventory.MovementType,
	ref, notes string,
) (AdjustStockCommand, error) {
	cmd := AdjustStockCommand{
		reference: strings.TrimSpace(reference),
		delta:     delta,
		kind:      kind,
		ref:       strings.TrimSpace(ref),
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}

	var referenceErr, deltaErr error
	if cmd.reference == "" {
		referenceErr = errs.NewValueIsRequiredError("reference")
	}
	if delta == 0 {
		deltaErr = errs.NewValueIsInvalidErrorWithCause("delta", errors.New("must not be zero"))
	}

	if err := errors.Join(referenceErr, deltaErr, kind.Validate()); err != nil {
		return AdjustStockCommand{}, err
	}

	return cmd, nil
}

func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

func (c AdjustStockCommand) Reference() string            { return c.reference }
func (c AdjustStockCommand) Delta() int                   { return c.delta }
func (c AdjustStockCommand) Type() inventory.MovementType { return c.kind }
func (c AdjustStockCommand) Ref() string                  { return c.ref }
func (c AdjustStockCommand) Notes() string                { return c.notes }

package commands

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpsertCatalogItemCommandIsNotConstructed = errors.New(
	"UpsertCatalogItemCommand must be created via NewUpsertCatalogItemCommand constructor",
)

// UpsertCatalogItemCommand creates a SKU or updates its metadata.
//
// With a code the SKU with that code is updated or created. Without one, a
// SKU whose name matches is updated, otherwise a new SKU gets the next
// generated code. An opening quantity is only recorded for a new SKU.
type UpsertCatalogItemCommand struct {
	code            string
	name            string
	kind            string
	costs           inventory.Costs
	salePrice       decimal.Decimal
	openingQuantity int

	guard guard.ConstructorGuard
}

func NewUpsertCatalogItemCommand(
	code, name, kind string,
	costs inventory.Costs,
	salePrice decimal.Decimal,
	openingQuantity int,
) (UpsertCatalogItemCommand, error) {
	cmd := UpsertCatalogItemCommand{
		code:            strings.TrimSpace(code),
		name:            strings.TrimSpace(name),
		kind:            strings.TrimSpace(kind),
		costs:           costs,
		salePrice:       salePrice,
		openingQuantity: openingQuantity,
		guard:           guard.NewConstructorGuard(),
	}

	var nameErr, qtyErr error
	if cmd.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if openingQuantity < 0 {
		qtyErr = errs.NewValueIsOutOfRangeError("openingQuantity", openingQuantity, 0, "∞")
	}

	if err := errors.Join(nameErr, qtyErr); err != nil {
		return UpsertCatalogItemCommand{}, err
	}

	return cmd, nil
}

func (c UpsertCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrUpsertCatalogItemCommandIsNotConstructed)
}

func (c UpsertCatalogItemCommand) Code() string               { return c.code }
func (c UpsertCatalogItemCommand) Name() string               { return c.name }
func (c UpsertCatalogItemCommand) Kind() string               { return c.kind }
func (c UpsertCatalogItemCommand) Costs() inventory.Costs     { return c.costs }
func (c UpsertCatalogItemCommand) SalePrice() decimal.Decimal { return c.salePrice }
func (c UpsertCatalogItemCommand) OpeningQuantity() int       { return c.openingQuantity }

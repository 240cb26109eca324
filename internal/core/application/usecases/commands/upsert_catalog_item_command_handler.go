package commands

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// OpeningStockRef is the movement ref of the opening quantity of a new SKU.
const OpeningStockRef = "opening"

type UpsertCatalogItemResult struct {
	Code     string
	Created  bool
	Quantity int
	Warning  *errs.NegativeStockWarning
}

// UpsertCatalogItemCommandHandler never changes quantity on hand itself.
// Opening stock of a new SKU goes through the StockAdjuster as a Manual
// movement so the ledger explains the quantity from the first day.
type UpsertCatalogItemCommandHandler struct {
	uowFactory StockUoWFactory
	locker     ports.Locker
	adjuster   StockAdjuster
}

func NewUpsertCatalogItemCommandHandler(
	uowFactory StockUoWFactory,
	locker ports.Locker,
	adjuster StockAdjuster,
) UpsertCatalogItemCommandHandler {
	return UpsertCatalogItemCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		adjuster:   adjuster,
	}
}

func (h UpsertCatalogItemCommandHandler) Handle(
	ctx context.Context,
	cmd UpsertCatalogItemCommand,
) (UpsertCatalogItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpsertCatalogItemResult{}, err
	}

	result, err := h.upsert(ctx, cmd)
	if err != nil {
		return UpsertCatalogItemResult{}, err
	}

	if !result.Created || cmd.OpeningQuantity() == 0 {
		return result, nil
	}

	adjust, err := NewAdjustStockCommand(result.Code, cmd.OpeningQuantity(), inventory.Manual, OpeningStockRef, "")
	if err != nil {
		return UpsertCatalogItemResult{}, err
	}

	adjusted, err := h.adjuster.Handle(ctx, adjust)
	if err != nil {
		return result, err
	}

	result.Quantity = adjusted.NewQuantity
	result.Warning = adjusted.Warning
	return result, nil
}

func (h UpsertCatalogItemCommandHandler) upsert(
	ctx context.Context,
	cmd UpsertCatalogItemCommand,
) (UpsertCatalogItemResult, error) {
	unlockCatalog, err := h.locker.Lock(ctx, ports.CatalogLockKey)
	if err != nil {
		return UpsertCatalogItemResult{}, err
	}
	defer unlockQuietly(ctx, unlockCatalog)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return UpsertCatalogItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	skuRepo := uow.SKURepository()
	existing, err := h.findExisting(ctx, skuRepo, cmd)
	if err != nil {
		return UpsertCatalogItemResult{}, err
	}

	if existing != nil {
		unlockSKU, lockErr := h.locker.Lock(ctx, ports.SKULockKey(existing.Code()))
		if lockErr != nil {
			return UpsertCatalogItemResult{}, lockErr
		}
		defer unlockQuietly(ctx, unlockSKU)

		// reload under the SKU lock so a concurrent adjustment is not overwritten
		if existing, err = skuRepo.Get(ctx, existing.Code()); err != nil {
			return UpsertCatalogItemResult{}, err
		}
		if err = existing.UpdateMetadata(cmd.Name(), cmd.Kind(), cmd.Costs(), cmd.SalePrice()); err != nil {
			return UpsertCatalogItemResult{}, err
		}
		if err = skuRepo.Update(ctx, existing); err != nil {
			return UpsertCatalogItemResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return UpsertCatalogItemResult{}, err
		}
		return UpsertCatalogItemResult{Code: existing.Code(), Quantity: existing.Quantity()}, nil
	}

	code := cmd.Code()
	if code == "" {
		codes, codesErr := skuRepo.Codes(ctx)
		if codesErr != nil {
			return UpsertCatalogItemResult{}, codesErr
		}
		code = inventory.NextCode(codes)
	}

	sku, err := inventory.NewSKU(code, cmd.Name(), cmd.Kind(), cmd.Costs(), cmd.SalePrice())
	if err != nil {
		return UpsertCatalogItemResult{}, err
	}
	if err = skuRepo.Add(ctx, sku); err != nil {
		return UpsertCatalogItemResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return UpsertCatalogItemResult{}, err
	}

	return UpsertCatalogItemResult{Code: code, Created: true}, nil
}

// findExisting returns the SKU the command targets, or nil when it names a new one.
func (h UpsertCatalogItemCommandHandler) findExisting(
	ctx context.Context,
	skuRepo ports.SKURepository,
	cmd UpsertCatalogItemCommand,
) (*inventory.SKU, error) {
	if cmd.Code() != "" {
		sku, err := skuRepo.Get(ctx, cmd.Code())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return sku, err
	}

	byName, err := skuRepo.FindByName(ctx, cmd.Name())
	if err != nil {
		return nil, err
	}

	res := inventory.Resolve(cmd.Name(), nil, byName)
	switch res.Kind {
	case inventory.Resolved:
		return res.SKU, nil
	case inventory.Ambiguous:
		return nil, res.Err()
	case inventory.NotFound:
	}
	return nil, nil
}

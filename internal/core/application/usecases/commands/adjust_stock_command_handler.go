package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// AdjustStockResult reports the committed adjustment.
type AdjustStockResult struct {
	Code        string
	Name        string
	Delta       int
	NewQuantity int

	// Warning is set when the adjustment left the SKU below zero. The
	// adjustment is committed regardless.
	Warning *errs.NegativeStockWarning
}

// StockAdjuster is the narrow view of AdjustStockCommandHandler that other
// handlers depend on.
type StockAdjuster interface {
	Handle(ctx context.Context, cmd AdjustStockCommand) (AdjustStockResult, error)
}

// AdjustStockCommandHandler resolves the SKU, then appends a movement and
// updates quantity on hand under the SKU lock.
//
// Resolution happens before any write: an unknown or ambiguous reference
// fails with errs.ErrObjectNotFound or errs.ErrAmbiguousReference and leaves
// the ledger untouched.
type AdjustStockCommandHandler struct {
	uowFactory StockUoWFactory
	locker     ports.Locker
	notifier   ports.AlertNotifier
	clock      ports.Clock
}

func NewAdjustStockCommandHandler(
	uowFactory StockUoWFactory,
	locker ports.Locker,
	notifier ports.AlertNotifier,
	clock ports.Clock,
) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (AdjustStockResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdjustStockResult{}, err
	}

	code, err := resolveSKUCode(ctx, h.uowFactory.Create(), cmd.Reference())
	if err != nil {
		return AdjustStockResult{}, err
	}

	unlock, err := h.locker.Lock(ctx, ports.SKULockKey(code))
	if err != nil {
		return AdjustStockResult{}, err
	}
	defer unlockQuietly(ctx, unlock)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AdjustStockResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	skuRepo := uow.SKURepository()
	sku, err := skuRepo.Get(ctx, code)
	if err != nil {
		return AdjustStockResult{}, err
	}

	quantity, err := applyMovement(ctx, skuRepo, uow.MovementLedger(), sku,
		cmd.Delta(), cmd.Type(), cmd.Ref(), cmd.Notes(), h.clock.Now())
	if err != nil {
		return AdjustStockResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdjustStockResult{}, err
	}

	return AdjustStockResult{
		Code:        sku.Code(),
		Name:        sku.Name(),
		Delta:       cmd.Delta(),
		NewQuantity: quantity,
		Warning:     warnIfNegative(ctx, h.notifier, h.clock, sku.Code(), quantity),
	}, nil
}

type catalogReader interface {
	TxManager
	SKURepoFactory
}

// resolveSKUCode resolves a code-or-name reference in a read-only unit of work.
func resolveSKUCode(ctx context.Context, uow catalogReader, reference string) (string, error) {
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	res, err := ports.ResolveSKU(ctx, uow.SKURepository(), reference)
	if err != nil {
		return "", err
	}
	if err = res.Err(); err != nil {
		return "", err
	}

	return res.SKU.Code(), nil
}

// applyMovement stages a movement and the matching quantity change. The
// caller commits both.
func applyMovement(
	ctx context.Context,
	skuRepo ports.SKURepository,
	ledger ports.MovementLedger,
	sku *inventory.SKU,
	delta int,
	kind inventory.MovementType,
	ref, notes string,
	at time.Time,
) (int, error) {
	movement, err := inventory.NewMovement(sku.Code(), sku.Name(), delta, kind, ref, notes, at)
	if err != nil {
		return 0, err
	}

	if err = ledger.Append(ctx, movement); err != nil {
		return 0, err
	}

	quantity, err := sku.ApplyMovement(movement)
	if err != nil {
		return 0, err
	}

	if err = skuRepo.Update(ctx, sku); err != nil {
		return 0, err
	}

	return quantity, nil
}

func warnIfNegative(
	ctx context.Context,
	notifier ports.AlertNotifier,
	clock ports.Clock,
	code string,
	quantity int,
) *errs.NegativeStockWarning {
	if quantity >= 0 {
		return nil
	}

	warning := errs.NewNegativeStockWarning(code, quantity)
	notifier.Notify(ctx, ports.Alert{
		Kind:    ports.AlertNegativeStock,
		Subject: code,
		Message: fmt.Sprintf("quantity on hand is %d", quantity),
		At:      clock.Now(),
	})

	return warning
}

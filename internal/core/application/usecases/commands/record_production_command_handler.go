package commands

import (
	"context"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"

	"github.com/shopspring/decimal"
)

type RecordProductionResult struct {
	EntryID     string
	Code        string
	Name        string
	NewQuantity int
	Total       decimal.Decimal
}

// RecordProductionCommandHandler writes the production entry, its Production
// movement and the new quantity in a single unit of work.
type RecordProductionCommandHandler struct {
	uowFactory ProductionUoWFactory
	locker     ports.Locker
	clock      ports.Clock
}

func NewRecordProductionCommandHandler(
	uowFactory ProductionUoWFactory,
	locker ports.Locker,
	clock ports.Clock,
) RecordProductionCommandHandler {
	return RecordProductionCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clock,
	}
}

func (h RecordProductionCommandHandler) Handle(
	ctx context.Context,
	cmd RecordProductionCommand,
) (RecordProductionResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordProductionResult{}, err
	}

	code, err := resolveSKUCode(ctx, h.uowFactory.Create(), cmd.SKURef())
	if err != nil {
		return RecordProductionResult{}, err
	}

	unlock, err := h.locker.Lock(ctx, ports.SKULockKey(code))
	if err != nil {
		return RecordProductionResult{}, err
	}
	defer unlockQuietly(ctx, unlock)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RecordProductionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	skuRepo := uow.SKURepository()
	sku, err := skuRepo.Get(ctx, code)
	if err != nil {
		return RecordProductionResult{}, err
	}

	entry, err := production.NewEntry(cmd.EntryID(), cmd.Date(), cmd.ProducerID(), cmd.SKURef(), cmd.Pieces(), cmd.UnitCost())
	if err != nil {
		return RecordProductionResult{}, err
	}
	entry.Resolve(sku.Code())

	if err = uow.ProductionLogRepository().Add(ctx, entry); err != nil {
		return RecordProductionResult{}, err
	}

	quantity, err := applyMovement(ctx, skuRepo, uow.MovementLedger(), sku,
		entry.Pieces(), inventory.Production, entry.ID().String(), "producer "+entry.ProducerID(), h.clock.Now())
	if err != nil {
		return RecordProductionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordProductionResult{}, err
	}

	return RecordProductionResult{
		EntryID:     entry.ID().String(),
		Code:        sku.Code(),
		Name:        sku.Name(),
		NewQuantity: quantity,
		Total:       entry.Total(),
	}, nil
}

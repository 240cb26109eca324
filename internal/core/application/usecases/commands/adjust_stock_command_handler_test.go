package commands_test

import (
	"errors"
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSKU(t *testing.T, code, name string) *inventory.SKU {
	t.Helper()

	sku, err := inventory.NewSKU(code, name, "dress",
		inventory.Costs{SewingCost: decimal.NewFromInt(10000)}, decimal.NewFromInt(25000))
	require.NoError(t, err)
	return sku
}

// expectResolve wires the read-only unit of work the handler resolves the reference in.
func expectResolve(t *testing.T, reference string, sku *inventory.SKU) *MockUoW {
	t.Helper()
	ctx := t.Context()

	repo := new(MockSKURepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SKURepository").Return(repo).Once()
	if sku != nil && sku.Code() == reference {
		repo.On("Get", ctx, reference).Return(sku, nil).Once()
	} else {
		repo.On("Get", ctx, reference).Return(nil, errs.NewObjectNotFoundError("sku", reference)).Once()
		var byName []*inventory.SKU
		if sku != nil {
			byName = append(byName, sku)
		}
		repo.On("FindByName", ctx, reference).Return(byName, nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
	return uow
}

func TestAdjustStockCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("Linen dress", 5, inventory.Production, "batch-1", "")
	require.NoError(t, err)

	resolved := newSKU(t, "INV0001", "Linen dress")
	stored := newSKU(t, "INV0001", "Linen dress")

	resolveUoW := expectResolve(t, "Linen dress", resolved)

	repo := new(MockSKURepository)
	ledger := new(MockMovementLedger)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SKURepository").Return(repo).Once(),
		repo.On("Get", ctx, "INV0001").Return(stored, nil).Once(),
		uow.On("MovementLedger").Return(ledger).Once(),
		ledger.On("Append", ctx, mock.MatchedBy(func(m inventory.Movement) bool {
			return m.Code() == "INV0001" && m.Delta() == 5 && m.Type() == inventory.Production &&
				m.Ref() == "batch-1" && m.At().Equal(fixedNow)
		})).Return(nil).Once(),
		repo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(resolveUoW).Once()
	factory.On("Create").Return(uow).Once()

	locker := new(recordingLocker)
	notifier := new(recordingNotifier)
	h := commands.NewAdjustStockCommandHandler(factory, locker, notifier, fixedClock)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "INV0001", result.Code)
	assert.Equal(t, 5, result.NewQuantity)
	assert.Nil(t, result.Warning)
	assert.Empty(t, notifier.Alerts())
	assert.Equal(t, []string{ports.SKULockKey("INV0001")}, locker.Keys())
	resolveUoW.AssertExpectations(t)
	uow.AssertExpectations(t)
	ledger.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAdjustStockCommandHandler_Handle_NegativeQuantityWarns(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("INV0001", -2, inventory.Withdraw, "100000001234", "")
	require.NoError(t, err)

	sku := newSKU(t, "INV0001", "Linen dress")
	resolveUoW := expectResolve(t, "INV0001", sku)

	repo := new(MockSKURepository)
	ledger := new(MockMovementLedger)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SKURepository").Return(repo).Once()
	uow.On("MovementLedger").Return(ledger).Once()
	repo.On("Get", ctx, "INV0001").Return(sku, nil).Once()
	ledger.On("Append", ctx, mock.AnythingOfType("inventory.Movement")).Return(nil).Once()
	repo.On("Update", ctx, sku).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(resolveUoW).Once()
	factory.On("Create").Return(uow).Once()

	notifier := new(recordingNotifier)
	h := commands.NewAdjustStockCommandHandler(factory, new(recordingLocker), notifier, fixedClock)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, -2, result.NewQuantity)
	require.NotNil(t, result.Warning)
	require.ErrorIs(t, result.Warning, errs.ErrNegativeStock)

	alerts := notifier.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, ports.AlertNegativeStock, alerts[0].Kind)
	assert.Equal(t, "INV0001", alerts[0].Subject)
	uow.AssertExpectations(t)
}

func TestAdjustStockCommandHandler_Handle_UnknownReferenceWritesNothing(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("Ghost", 1, inventory.Manual, "", "")
	require.NoError(t, err)

	resolveUoW := expectResolve(t, "Ghost", nil)

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(resolveUoW).Once()

	locker := new(recordingLocker)
	h := commands.NewAdjustStockCommandHandler(factory, locker, new(recordingNotifier), fixedClock)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, locker.Keys())
	factory.AssertNumberOfCalls(t, "Create", 1)
	resolveUoW.AssertExpectations(t)
}

func TestAdjustStockCommandHandler_Handle_AmbiguousReferenceWritesNothing(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("Model X", 1, inventory.Manual, "", "")
	require.NoError(t, err)

	repo := new(MockSKURepository)
	repo.On("Get", ctx, "Model X").Return(nil, errs.NewObjectNotFoundError("sku", "Model X")).Once()
	repo.On("FindByName", ctx, "Model X").Return([]*inventory.SKU{
		newSKU(t, "INV0003", "Model X"),
		newSKU(t, "INV0004", "model x"),
	}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SKURepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdjustStockCommandHandler(factory, new(recordingLocker), new(recordingNotifier), fixedClock)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAmbiguousReference)
	assert.Contains(t, err.Error(), "INV0003")
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestAdjustStockCommandHandler_Handle_AppendErrorDoesNotCommit(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("INV0001", 1, inventory.Manual, "", "")
	require.NoError(t, err)
	appendErr := errors.New("disk full")

	sku := newSKU(t, "INV0001", "Linen dress")
	resolveUoW := expectResolve(t, "INV0001", sku)

	repo := new(MockSKURepository)
	ledger := new(MockMovementLedger)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SKURepository").Return(repo).Once()
	uow.On("MovementLedger").Return(ledger).Once()
	repo.On("Get", ctx, "INV0001").Return(sku, nil).Once()
	ledger.On("Append", ctx, mock.AnythingOfType("inventory.Movement")).Return(appendErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(resolveUoW).Once()
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdjustStockCommandHandler(factory, new(recordingLocker), new(recordingNotifier), fixedClock)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, appendErr)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

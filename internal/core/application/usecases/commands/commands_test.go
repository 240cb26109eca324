package commands_test

import (
	"testing"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_DefaultsToReady(t *testing.T) {
	cmd := newCreateOrderCommand(t)
	assert.Equal(t, order.Ready, cmd.Initial())
	assert.Equal(t, "100000001234", cmd.OrderID().String())
	assert.Len(t, cmd.Items(), 1)
}

func TestNewCreateOrderCommand_InitialMustBeInitial(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.MustNewOrderID("100000001234"),
		order.Details{ProductName: "Scarf"}, nil, order.Shipping)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.OrderID{}, order.Details{ProductName: "Scarf"}, nil, order.Ready)
	require.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)
}

func TestNewCreateOrderCommand_UnconstructedItem(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.MustNewOrderID("100000001234"),
		order.Details{}, []order.Item{{}}, order.Ready)
	require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
}

func TestNewAdjustStockCommand(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		delta     int
		kind      inventory.MovementType
		wantErr   error
	}{
		{"manual increase", " INV0001 ", 5, inventory.Manual, nil},
		{"withdraw", "Linen dress", -2, inventory.Withdraw, nil},
		{"empty reference", "  ", 1, inventory.Manual, errs.ErrValueIsRequired},
		{"zero delta", "INV0001", 0, inventory.Manual, errs.ErrValueIsInvalid},
		{"unknown type", "INV0001", 1, inventory.UnknownMovement, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewAdjustStockCommand(tt.reference, tt.delta, tt.kind, "ref", "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.NotContains(t, cmd.Reference(), " ")
			assert.Equal(t, tt.delta, cmd.Delta())
		})
	}
}

func TestNewTransitionOrderCommand(t *testing.T) {
	cmd, err := commands.NewTransitionOrderCommand(kernel.MustNewOrderID("100000001234"), order.Returned, "  refused ")
	require.NoError(t, err)
	assert.Equal(t, order.Returned, cmd.To())
	assert.Equal(t, "refused", cmd.Reason())

	_, err = commands.NewTransitionOrderCommand(kernel.MustNewOrderID("100000001234"), order.Unknown, "")
	require.Error(t, err)

	_, err = commands.NewTransitionOrderCommand(kernel.OrderID{}, order.Shipping, "")
	require.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)
}

func TestNewTransitionOrdersCommand(t *testing.T) {
	cmd, err := commands.NewTransitionOrdersCommand([]string{" 100000001234 ", "bad"}, order.Shipping, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"100000001234", "bad"}, cmd.OrderIDs())

	_, err = commands.NewTransitionOrdersCommand(nil, order.Shipping, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewReplaceOrderItemsCommand_RequiresItems(t *testing.T) {
	_, err := commands.NewReplaceOrderItemsCommand(kernel.MustNewOrderID("100000001234"), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewUpsertCatalogItemCommand(t *testing.T) {
	cmd, err := commands.NewUpsertCatalogItemCommand("", " Linen dress ", "dress", inventory.Costs{}, decimal.NewFromInt(25000), 10)
	require.NoError(t, err)
	assert.Equal(t, "Linen dress", cmd.Name())
	assert.Equal(t, 10, cmd.OpeningQuantity())

	_, err = commands.NewUpsertCatalogItemCommand("INV0001", " ", "", inventory.Costs{}, decimal.Zero, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewUpsertCatalogItemCommand("", "Scarf", "", inventory.Costs{}, decimal.Zero, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewRecordProductionCommand(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cmd, err := commands.NewRecordProductionCommand(kernel.NewUUID(), date, "P-7", "INV0001", 12, decimal.NewFromInt(9000))
	require.NoError(t, err)
	assert.Equal(t, 12, cmd.Pieces())
	assert.Equal(t, "P-7", cmd.ProducerID())

	_, err = commands.NewRecordProductionCommand(kernel.NewUUID(), date, "P-7", "INV0001", 0, decimal.Zero)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewRecordProductionCommand(kernel.UUID{}, date, "P-7", "INV0001", 1, decimal.Zero)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewMatchInvoiceCommand_TrimsLines(t *testing.T) {
	cmd, err := commands.NewMatchInvoiceCommand([]commands.InvoiceLine{{OrderID: " 100000001234 ", Amount: " 25000 "}})
	require.NoError(t, err)
	assert.Equal(t, []commands.InvoiceLine{{OrderID: "100000001234", Amount: "25000"}}, cmd.Lines())

	_, err = commands.NewMatchInvoiceCommand(nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

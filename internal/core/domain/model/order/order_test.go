package order_test

import (
	"encoding/json"
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func mustItem(t *testing.T, code, name string, qty int) order.Item {
	t.Helper()
	item, err := order.NewItem(code, name, qty)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, initial order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.MustNewOrderID("100000001234"),
		order.Details{Price: decimal.NewFromInt(25000), ProductName: "Linen dress", Page: "main"},
		[]order.Item{mustItem(t, "INV0001", "Linen dress", 2)},
		initial,
		createdAt,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)

		require.NoError(t, o.Validate())
		assert.Equal(t, "100000001234", o.ID().String())
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, createdAt, o.StatusUpdatedAt())
		assert.Nil(t, o.ShippingAt())
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.HasExplicitItems())
	})

	t.Run("unknown initial status defaults to ready", func(t *testing.T) {
		o := newTestOrder(t, order.Unknown)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("processing is an allowed initial status", func(t *testing.T) {
		o := newTestOrder(t, order.Processing)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("shipping is not an initial status", func(t *testing.T) {
		_, err := order.NewOrder(kernel.MustNewOrderID("123456"), order.Details{ProductName: "x"}, nil, order.Shipping, createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("multiple errors are joined", func(t *testing.T) {
		var id kernel.OrderID
		_, err := order.NewOrder(id, order.Details{Price: decimal.NewFromInt(-1)}, nil, order.Delivered, createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unconstructed item is rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.MustNewOrderID("123456"), order.Details{}, []order.Item{{}}, order.Ready, createdAt)
		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestOrder_ImplicitLegacyItem(t *testing.T) {
	o, err := order.NewOrder(kernel.MustNewOrderID("123456"), order.Details{ProductName: "Abaya"}, nil, order.Ready, createdAt)
	require.NoError(t, err)

	items := o.Items()

	require.Len(t, items, 1)
	assert.False(t, o.HasExplicitItems())
	assert.Equal(t, "Abaya", items[0].ProductName())
	assert.Equal(t, 1, items[0].Qty())
	require.NoError(t, items[0].Validate())
}

func TestOrder_Transition(t *testing.T) {
	shipAt := createdAt.Add(time.Hour)
	deliverAt := createdAt.Add(48 * time.Hour)

	t.Run("stamps typed timestamps", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)

		from, err := o.Transition(order.Shipping, "", order.StrictTransitions, shipAt)
		require.NoError(t, err)
		assert.Equal(t, order.Ready, from)
		assert.Equal(t, shipAt, *o.ShippingAt())

		from, err = o.Transition(order.Delivered, "", order.StrictTransitions, deliverAt)
		require.NoError(t, err)
		assert.Equal(t, order.Shipping, from)
		assert.Equal(t, deliverAt, o.StatusUpdatedAt())
		assert.Equal(t, deliverAt, *o.DeliveredAt())
		assert.Equal(t, shipAt, *o.ShippingAt(), "earlier timestamps are never cleared")
	})

	t.Run("returned records reason", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)
		_, err := o.Transition(order.Shipping, "", order.StrictTransitions, shipAt)
		require.NoError(t, err)

		_, err = o.Transition(order.Returned, "  customer refused  ", order.StrictTransitions, deliverAt)

		require.NoError(t, err)
		assert.Equal(t, "customer refused", o.ReturnReason())
		assert.Equal(t, deliverAt, *o.ReturnedAt())
	})

	t.Run("same status is invalid and changes nothing", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)

		_, err := o.Transition(order.Ready, "", order.PermissiveTransitions, shipAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, createdAt, o.StatusUpdatedAt())
	})

	t.Run("strict refuses ready to delivered", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)

		_, err := o.Transition(order.Delivered, "", order.StrictTransitions, shipAt)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "Ready", transitionErr.From)
		assert.Equal(t, "Delivered", transitionErr.To)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("permissive accepts ready to delivered", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)

		_, err := o.Transition(order.Delivered, "", order.PermissiveTransitions, shipAt)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	o := newTestOrder(t, order.Ready)

	previous, err := o.ReplaceItems([]order.Item{mustItem(t, "INV0002", "", 1), mustItem(t, "", "Scarf", 4)})

	require.NoError(t, err)
	require.Len(t, previous, 1)
	assert.Equal(t, "INV0001", previous[0].SKUCode())
	assert.Equal(t, 5, order.TotalQty(o.Items()))

	_, err = o.ReplaceItems(nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOrder_UpdateDetails(t *testing.T) {
	o := newTestOrder(t, order.Ready)

	err := o.UpdateDetails(order.Details{Address: "Baghdad", Price: decimal.NewFromInt(30000)})
	require.NoError(t, err)
	assert.Equal(t, "Baghdad", o.Details().Address)
	assert.True(t, o.Price().Equal(decimal.NewFromInt(30000)))

	err = o.UpdateDetails(order.Details{Price: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, "Baghdad", o.Details().Address)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trip through record", func(t *testing.T) {
		o := newTestOrder(t, order.Ready)
		_, err := o.Transition(order.Shipping, "", order.StrictTransitions, createdAt.Add(time.Hour))
		require.NoError(t, err)

		restored, err := order.RestoreOrder(o.Record())

		require.NoError(t, err)
		assert.Equal(t, o.Record(), restored.Record())
	})

	t.Run("legacy record is default-filled", func(t *testing.T) {
		restored, err := order.RestoreOrder(order.Record{
			ID:          "٥٥٥٥٥٥٥",
			CreatedAt:   createdAt,
			ProductName: "Abaya",
			Price:       decimal.NewFromInt(20000),
		})

		require.NoError(t, err)
		assert.Equal(t, "5555555", restored.ID().String())
		assert.Equal(t, order.Ready, restored.Status())
		assert.Equal(t, createdAt, restored.StatusUpdatedAt())
		require.Len(t, restored.Items(), 1)
		assert.Equal(t, "Abaya", restored.Items()[0].ProductName())
	})

	t.Run("legacy json without status", func(t *testing.T) {
		var rec order.Record
		require.NoError(t, json.Unmarshal([]byte(`{"id":"123456","createdAt":"2026-03-01T10:00:00Z","status":"","price":"100","items":[{"productName":"Scarf","qty":0}]}`), &rec))

		restored, err := order.RestoreOrder(rec)

		require.NoError(t, err)
		assert.Equal(t, order.Ready, restored.Status())
		assert.Equal(t, 1, restored.Items()[0].Qty())
	})

	t.Run("bad id is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(order.Record{ID: "12"})
		require.ErrorIs(t, err, errs.ErrInvalidID)
	})
}

func TestInRange(t *testing.T) {
	from := createdAt
	to := createdAt.Add(24 * time.Hour)
	inside := createdAt.Add(time.Hour)
	before := createdAt.Add(-time.Hour)

	assert.True(t, order.InRange(&inside, &from, &to))
	assert.True(t, order.InRange(&from, &from, &to))
	assert.False(t, order.InRange(&before, &from, &to))
	assert.False(t, order.InRange(nil, &from, &to))
	assert.True(t, order.InRange(&before, nil, nil))
}

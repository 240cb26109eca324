package production_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("total is pieces times unit cost", func(t *testing.T) {
		e, err := production.NewEntry(kernel.NewUUID(), date, "seamstress-1", "Linen dress", 12, decimal.NewFromInt(4000))

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.True(t, decimal.NewFromInt(48000).Equal(e.Total()))
		assert.False(t, e.Paid())
		assert.Empty(t, e.SKUCode())
	})

	t.Run("all field errors are joined", func(t *testing.T) {
		var id kernel.UUID
		_, err := production.NewEntry(id, date, "", " ", 0, decimal.NewFromInt(-1))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestEntry_PaidAndRestore(t *testing.T) {
	e, err := production.NewEntry(kernel.NewUUID(), time.Now().UTC(), "seamstress-1", "Linen dress", 3, decimal.NewFromInt(4000))
	require.NoError(t, err)

	e.Resolve("INV0001")
	e.SetPaid(true)

	restored, err := production.RestoreEntry(e.Record())
	require.NoError(t, err)
	assert.Equal(t, e.Record(), restored.Record())
	assert.True(t, restored.Paid())
	assert.Equal(t, "INV0001", restored.SKUCode())

	restored.SetPaid(false)
	assert.False(t, restored.Paid())
}

func TestEntry_ZeroValue(t *testing.T) {
	var e *production.Entry
	assert.Equal(t, production.ErrEntryIsNotConstructed, e.Validate())
}

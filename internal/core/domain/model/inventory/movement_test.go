package inventory_test

import (
	"encoding/json"
	"testing"
	"time"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		delta   int
		kind    inventory.MovementType
		wantErr error
	}{
		{name: "production adds", delta: 10, kind: inventory.Production},
		{name: "withdraw removes", delta: -2, kind: inventory.Withdraw},
		{name: "return adds", delta: 2, kind: inventory.Return},
		{name: "manual removes", delta: -1, kind: inventory.Manual},
		{name: "manual adds", delta: 1, kind: inventory.Manual},
		{name: "zero delta", delta: 0, kind: inventory.Manual, wantErr: errs.ErrValueIsInvalid},
		{name: "positive withdraw", delta: 2, kind: inventory.Withdraw, wantErr: errs.ErrValueIsInvalid},
		{name: "negative return", delta: -2, kind: inventory.Return, wantErr: errs.ErrValueIsInvalid},
		{name: "negative production", delta: -2, kind: inventory.Production, wantErr: errs.ErrValueIsInvalid},
		{name: "unknown type", delta: 2, kind: inventory.UnknownMovement, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := inventory.NewMovement("INV0001", "Linen dress", tt.delta, tt.kind, "ref", "", at)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(0), m.ID())
			assert.Equal(t, tt.delta, m.Delta())
			assert.Equal(t, tt.kind, m.Type())
			assert.Equal(t, at, m.At())
		})
	}

	t.Run("missing code", func(t *testing.T) {
		_, err := inventory.NewMovement("", "x", 1, inventory.Manual, "", "", at)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestMovement_WithIDAndRecord(t *testing.T) {
	m, err := inventory.NewMovement("INV0001", "Linen dress", -2, inventory.Withdraw, "100000001234", "dispatch", time.Now().UTC())
	require.NoError(t, err)

	appended := m.WithID(7)
	assert.Equal(t, int64(0), m.ID(), "WithID returns a copy")
	assert.Equal(t, int64(7), appended.ID())

	data, err := json.Marshal(appended.Record())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"Withdraw"`)

	var rec inventory.MovementRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	restored, err := inventory.RestoreMovement(rec)
	require.NoError(t, err)
	assert.Equal(t, appended.Record(), restored.Record())

	rec.ID = 0
	_, err = inventory.RestoreMovement(rec)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestParseMovementType(t *testing.T) {
	kind, err := inventory.ParseMovementType("production")
	require.NoError(t, err)
	assert.Equal(t, inventory.Production, kind)

	_, err = inventory.ParseMovementType("gift")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestBalance(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mk := func(code string, delta int, kind inventory.MovementType, at time.Time) inventory.Movement {
		m, err := inventory.NewMovement(code, "", delta, kind, "", "", at)
		require.NoError(t, err)
		return m
	}
	ledger := []inventory.Movement{
		mk("INV0001", 10, inventory.Production, t0),
		mk("INV0001", -2, inventory.Withdraw, t0.Add(time.Hour)),
		mk("INV0002", 5, inventory.Production, t0.Add(time.Hour)),
		mk("INV0001", 2, inventory.Return, t0.Add(2*time.Hour)),
	}

	cut := t0.Add(time.Hour)
	assert.Equal(t, 10, inventory.Balance(ledger, "INV0001", nil))
	assert.Equal(t, 8, inventory.Balance(ledger, "INV0001", &cut))
	assert.Equal(t, 0, inventory.Balance(ledger, "INV0009", nil))
}

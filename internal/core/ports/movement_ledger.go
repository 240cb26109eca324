package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/inventory"
)

// MovementLedger is the append-only log of signed stock deltas. Entries are
// never edited or deleted, and every query returns them in ascending id order.
type MovementLedger interface {
	// Append stages a movement. The ledger assigns the id as max(existing)+1
	// when the unit of work commits; the id of the argument is ignored.
	// Append never checks the resulting stock sign.
	Append(ctx context.Context, movement inventory.Movement) error

	// QueryByCode returns every movement of one SKU.
	QueryByCode(ctx context.Context, code string) ([]inventory.Movement, error)

	// QueryByDate returns the movements of one calendar day (UTC).
	QueryByDate(ctx context.Context, day time.Time) ([]inventory.Movement, error)

	// QueryByRef returns the movements correlated with ref, e.g. an order id.
	QueryByRef(ctx context.Context, ref string) ([]inventory.Movement, error)

	// QueryRange returns movements with from <= at <= to. Nil bounds are open.
	QueryRange(ctx context.Context, from, to *time.Time) ([]inventory.Movement, error)
}

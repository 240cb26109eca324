package ports

import (
	"context"
	"io"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
)

// Snapshot is a consistent view of orders, catalog and ledger taken at one
// point in time. Callers must treat it as read-only.
type Snapshot struct {
	// Version identifies the committed state the snapshot was taken from.
	// Zero when the backend does not version its state.
	Version   uint64
	Orders    []*order.Order
	SKUs      []*inventory.SKU
	Movements []inventory.Movement
}

// SnapshotReader hands out consistent snapshots for reporting.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// ReportExporter renders a profitability report into a document format.
type ReportExporter interface {
	ContentType() string
	Export(w io.Writer, report services.Report) error
}

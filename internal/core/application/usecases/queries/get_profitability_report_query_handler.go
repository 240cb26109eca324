package queries

import (
	"context"

	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

// GetProfitabilityReportQueryHandler runs the costing engine over one
// consistent snapshot of orders, catalog and ledger.
type GetProfitabilityReportQueryHandler struct {
	snapshots ports.SnapshotReader
	engine    services.CostingEngine
}

func NewGetProfitabilityReportQueryHandler(snapshots ports.SnapshotReader) GetProfitabilityReportQueryHandler {
	return GetProfitabilityReportQueryHandler{
		snapshots: snapshots,
		engine:    services.NewCostingEngine(),
	}
}

func (h GetProfitabilityReportQueryHandler) Handle(
	ctx context.Context,
	query GetProfitabilityReportQuery,
) (services.Report, error) {
	if err := query.Validate(); err != nil {
		return services.Report{}, err
	}

	snap, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		return services.Report{}, err
	}

	return h.engine.Report(services.CostingInput{
		Orders:    snap.Orders,
		SKUs:      snap.SKUs,
		Movements: snap.Movements,
	}, query.Params()), nil
}

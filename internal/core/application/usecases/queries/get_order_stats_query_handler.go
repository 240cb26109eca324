package queries

import (
	"context"

	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
)

type GetOrderStatsQueryHandler struct {
	snapshots ports.SnapshotReader
	engine    services.CostingEngine
}

func NewGetOrderStatsQueryHandler(snapshots ports.SnapshotReader) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{snapshots: snapshots, engine: services.NewCostingEngine()}
}

func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (services.Stats, error) {
	if err := query.Validate(); err != nil {
		return services.Stats{}, err
	}

	snap, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		return services.Stats{}, err
	}

	return h.engine.Stats(snap.Orders, query.From(), query.To()), nil
}

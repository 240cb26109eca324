package queries

import (
	"context"

	"atelier/internal/core/ports"
)

type GetRecentAlertsQueryHandler struct {
	alerts ports.AlertReader
}

func NewGetRecentAlertsQueryHandler(alerts ports.AlertReader) GetRecentAlertsQueryHandler {
	return GetRecentAlertsQueryHandler{alerts: alerts}
}

func (h GetRecentAlertsQueryHandler) Handle(ctx context.Context, query GetRecentAlertsQuery) ([]ports.Alert, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.alerts.Recent(ctx, query.Limit())
}

package queries

import (
	"context"

	"atelier/internal/core/ports"

	"github.com/shopspring/decimal"
)

type ProductionLogResponse struct {
	Entries []ProductionResponse

	// Unpaid is the total still owed to producers across the listed entries.
	Unpaid decimal.Decimal
}

type ListProductionQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListProductionQueryHandler(uowFactory ports.UnitOfWorkFactory) ListProductionQueryHandler {
	return ListProductionQueryHandler{uowFactory: uowFactory}
}

func (h ListProductionQueryHandler) Handle(ctx context.Context, query ListProductionQuery) (ProductionLogResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductionLogResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (ProductionLogResponse, error) {
		entries, err := uow.ProductionLogRepository().List(ctx)
		if err != nil {
			return ProductionLogResponse{}, err
		}

		resp := ProductionLogResponse{Entries: make([]ProductionResponse, 0, len(entries)), Unpaid: decimal.Zero}
		for _, e := range entries {
			if query.UnpaidOnly() && e.Paid() {
				continue
			}
			resp.Entries = append(resp.Entries, newProductionResponse(e))
			if !e.Paid() {
				resp.Unpaid = resp.Unpaid.Add(e.Total())
			}
		}
		return resp, nil
	})
}

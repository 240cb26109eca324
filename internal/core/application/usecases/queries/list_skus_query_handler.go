package queries

import (
	"context"

	"atelier/internal/core/ports"
)

type ListSKUsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListSKUsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListSKUsQueryHandler {
	return ListSKUsQueryHandler{uowFactory: uowFactory}
}

func (h ListSKUsQueryHandler) Handle(ctx context.Context, query ListSKUsQuery) ([]SKUResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]SKUResponse, error) {
		skus, err := uow.SKURepository().List(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]SKUResponse, 0, len(skus))
		for _, sku := range skus {
			resp = append(resp, newSKUResponse(sku))
		}
		return resp, nil
	})
}

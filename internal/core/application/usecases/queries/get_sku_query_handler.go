package queries

import (
	"context"

	"atelier/internal/core/ports"
)

type GetSKUQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetSKUQueryHandler(uowFactory ports.UnitOfWorkFactory) GetSKUQueryHandler {
	return GetSKUQueryHandler{uowFactory: uowFactory}
}

func (h GetSKUQueryHandler) Handle(ctx context.Context, query GetSKUQuery) (SKUResponse, error) {
	if err := query.Validate(); err != nil {
		return SKUResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (SKUResponse, error) {
		sku, err := uow.SKURepository().Get(ctx, query.Code())
		if err != nil {
			return SKUResponse{}, err
		}
		return newSKUResponse(sku), nil
	})
}

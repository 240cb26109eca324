package queries

import (
	"context"

	"atelier/internal/core/ports"
)

type ResolveSKUQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewResolveSKUQueryHandler(uowFactory ports.UnitOfWorkFactory) ResolveSKUQueryHandler {
	return ResolveSKUQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound or errs.ErrAmbiguousReference when
// the reference does not point to exactly one SKU.
func (h ResolveSKUQueryHandler) Handle(ctx context.Context, query ResolveSKUQuery) (SKUResponse, error) {
	if err := query.Validate(); err != nil {
		return SKUResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (SKUResponse, error) {
		res, err := ports.ResolveSKU(ctx, uow.SKURepository(), query.Reference())
		if err != nil {
			return SKUResponse{}, err
		}
		if err = res.Err(); err != nil {
			return SKUResponse{}, err
		}
		return newSKUResponse(res.SKU), nil
	})
}

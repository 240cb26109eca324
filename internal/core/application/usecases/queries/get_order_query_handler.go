package queries

import (
	"context"

	"atelier/internal/core/ports"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound for an unknown id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) (OrderResponse, error) {
		o, err := uow.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return OrderResponse{}, err
		}
		return newOrderResponse(o), nil
	})
}

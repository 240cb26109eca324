package queries

import (
	"context"

	"atelier/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]OrderResponse, error) {
		orders, err := uow.OrderRepository().List(ctx, query.Filter())
		if err != nil {
			return nil, err
		}

		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, newOrderResponse(o))
		}
		return resp, nil
	})
}

package queries

import (
	"context"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/ports"
)

// GetMovementsQueryHandler returns movements in ledger order.
type GetMovementsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetMovementsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetMovementsQueryHandler {
	return GetMovementsQueryHandler{uowFactory: uowFactory}
}

func (h GetMovementsQueryHandler) Handle(ctx context.Context, query GetMovementsQuery) ([]MovementResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.uowFactory, func(uow ports.UnitOfWork) ([]MovementResponse, error) {
		ledger := uow.MovementLedger()

		var (
			movements []inventory.Movement
			err       error
		)
		switch {
		case query.Code() != "":
			movements, err = ledger.QueryByCode(ctx, query.Code())
		case query.Day() != nil:
			movements, err = ledger.QueryByDate(ctx, *query.Day())
		default:
			movements, err = ledger.QueryByRef(ctx, query.Ref())
		}
		if err != nil {
			return nil, err
		}

		return newMovementResponses(movements), nil
	})
}

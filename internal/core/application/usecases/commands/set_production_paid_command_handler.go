package commands

import "context"

// SetProductionPaidCommandHandler toggles payment; stock is not affected.
type SetProductionPaidCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewSetProductionPaidCommandHandler(uowFactory ProductionUoWFactory) SetProductionPaidCommandHandler {
	return SetProductionPaidCommandHandler{uowFactory: uowFactory}
}

func (h SetProductionPaidCommandHandler) Handle(ctx context.Context, cmd SetProductionPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductionLogRepository()
	entry, err := repo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}

	entry.SetPaid(cmd.Paid())

	if err = repo.Update(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

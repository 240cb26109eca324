package ports

import (
	"context"
	"errors"

	"atelier/internal/pkg/errs"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every change staged through its repositories is committed together or not at all:
// a ledger append and the matching SKU quantity update can never diverge.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// Returns error if no active transaction; handlers defer it and ignore that error after Commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// SKURepository returns a SKURepository bound to the current transaction.
	SKURepository() SKURepository

	// MovementLedger returns the ledger bound to the current transaction.
	MovementLedger() MovementLedger

	// ProductionLogRepository returns a ProductionLogRepository bound to the current transaction.
	ProductionLogRepository() ProductionLogRepository
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}

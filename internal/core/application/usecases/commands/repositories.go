// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-key locking,
// transaction management and persistence.
package commands

import (
	"context"

	"atelier/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SKURepoFactory provides access to the catalog within a transaction.
	SKURepoFactory interface {
		SKURepository() ports.SKURepository
	}

	// LedgerFactory provides access to the movement ledger within a transaction.
	LedgerFactory interface {
		MovementLedger() ports.MovementLedger
	}

	// ProductionRepoFactory provides access to the production log within a transaction.
	ProductionRepoFactory interface {
		ProductionLogRepository() ports.ProductionLogRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Status changes commit here; their stock effects run afterwards through StockHook.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW stages a ledger append together with the SKU snapshot update.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.MovementLedger().Append(ctx, movement)
	//   err = uow.SKURepository().Update(ctx, sku)
	//
	//   err = uow.Commit(ctx)
	StockUoW interface {
		TxManager
		SKURepoFactory
		LedgerFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// ProductionUoW records a production entry and its Production movement atomically.
	ProductionUoW interface {
		TxManager
		ProductionRepoFactory
		SKURepoFactory
		LedgerFactory
	}

	// ProductionUoWFactory creates new production unit of work instances.
	ProductionUoWFactory interface {
		Create() ProductionUoW
	}
)

// unlockQuietly releases a lock even when the request context is already cancelled.
func unlockQuietly(ctx context.Context, unlock ports.Unlock) {
	_ = unlock(context.WithoutCancel(ctx))
}

// Function adapters let one ports.UnitOfWorkFactory serve every narrow factory.
//
// Example:
//
//	orders := OrderUoWFactoryFunc(func() OrderUoW { return factory.Create() })
type (
	OrderUoWFactoryFunc      func() OrderUoW
	StockUoWFactoryFunc      func() StockUoW
	ProductionUoWFactoryFunc func() ProductionUoW
)

func (f OrderUoWFactoryFunc) Create() OrderUoW           { return f() }
func (f StockUoWFactoryFunc) Create() StockUoW           { return f() }
func (f ProductionUoWFactoryFunc) Create() ProductionUoW { return f() }

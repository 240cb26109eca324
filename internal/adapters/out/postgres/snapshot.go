package postgres

import (
	"context"
	"database/sql"
	"sort"

	"atelier/internal/adapters/out/postgres/movementrepo"
	"atelier/internal/adapters/out/postgres/orderrepo"
	"atelier/internal/adapters/out/postgres/productionrepo"
	"atelier/internal/adapters/out/postgres/skurepo"
	"atelier/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table of the backend in dependency order.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&skurepo.SKUDTO{},
		&movementrepo.MovementDTO{},
		&productionrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SnapshotReader reads orders, catalog and ledger inside one read-only
// repeatable-read transaction, so a report never mixes two commits.
type SnapshotReader struct {
	db *gorm.DB
}

func NewSnapshotReader(db *gorm.DB) *SnapshotReader {
	return &SnapshotReader{db: db}
}

// Snapshot always reports Version 0: PostgreSQL state is not versioned here.
func (r *SnapshotReader) Snapshot(ctx context.Context) (ports.Snapshot, error) {
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if tx.Error != nil {
		return ports.Snapshot{}, tx.Error
	}
	defer tx.Rollback()

	uow := &GormUnitOfWork{db: tx}

	orders, err := uow.OrderRepository().List(ctx, ports.OrderFilter{})
	if err != nil {
		return ports.Snapshot{}, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID().String() < orders[j].ID().String()
	})

	skus, err := uow.SKURepository().List(ctx)
	if err != nil {
		return ports.Snapshot{}, err
	}

	movements, err := uow.MovementLedger().QueryRange(ctx, nil, nil)
	if err != nil {
		return ports.Snapshot{}, err
	}

	return ports.Snapshot{
		Orders:    orders,
		SKUs:      skus,
		Movements: movements,
	}, nil
}

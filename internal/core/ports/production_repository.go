package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/production"
)

// ProductionLogRepository persists production log entries.
type ProductionLogRepository interface {
	Add(ctx context.Context, entry *production.Entry) error
	Update(ctx context.Context, entry *production.Entry) error
	Get(ctx context.Context, id kernel.UUID) (*production.Entry, error)

	// List returns every entry ordered by date, then id.
	List(ctx context.Context) ([]*production.Entry, error)
}

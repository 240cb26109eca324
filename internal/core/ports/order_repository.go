// Package ports defines the contracts between the domain layer and the
// infrastructure: repositories, the unit of work, per-key locking, alerting,
// time and consistent reporting reads.
package ports

import (
	"context"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
)

// OrderFilter narrows OrderRepository.List. Zero fields do not filter.
type OrderFilter struct {
	// Statuses keeps orders in any of the listed statuses.
	Statuses []order.Status

	// Page keeps orders attributed to this sales page (case-insensitive).
	Page string

	// CreatedFrom and CreatedTo bound createdAt inclusively.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Matches reports whether the order passes the filter. Adapters that cannot
// push the filter down to storage apply it in memory with this method.
func (f OrderFilter) Matches(o *order.Order) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if o.Status() == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if page := strings.TrimSpace(f.Page); page != "" && !strings.EqualFold(o.Page(), page) {
		return false
	}

	createdAt := o.CreatedAt()
	return order.InRange(&createdAt, f.CreatedFrom, f.CreatedTo)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. An order with the same id must not exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order. Returns errs.ErrObjectNotFound for an unknown id.
	Delete(ctx context.Context, id kernel.OrderID) error

	// Get retrieves an order by id. Returns errs.ErrObjectNotFound for an unknown id.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// List returns the orders matching the filter, newest createdAt first and
	// by descending id on ties.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}

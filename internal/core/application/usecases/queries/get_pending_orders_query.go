package queries

import (
	"errors"
	"time"

	"atelier/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery lists orders currently Shipping. The optional window
// applies to the time the order entered Shipping.
type GetPendingOrdersQuery struct {
	from *time.Time
	to   *time.Time

	guard guard.ConstructorGuard
}

func NewGetPendingOrdersQuery(from, to *time.Time) (GetPendingOrdersQuery, error) {
	if err := checkRange(from, to); err != nil {
		return GetPendingOrdersQuery{}, err
	}
	return GetPendingOrdersQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

func (q GetPendingOrdersQuery) From() *time.Time { return q.from }
func (q GetPendingOrdersQuery) To() *time.Time   { return q.to }

package queries

import (
	"errors"
	"time"

	"atelier/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery counts orders created in a range by status, by price and by day.
type GetOrderStatsQuery struct {
	from *time.Time
	to   *time.Time

	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery(from, to *time.Time) (GetOrderStatsQuery, error) {
	if err := checkRange(from, to); err != nil {
		return GetOrderStatsQuery{}, err
	}
	return GetOrderStatsQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

func (q GetOrderStatsQuery) From() *time.Time { return q.from }
func (q GetOrderStatsQuery) To() *time.Time   { return q.to }

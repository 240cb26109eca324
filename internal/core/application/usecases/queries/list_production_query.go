package queries

import (
	"errors"

	"atelier/internal/pkg/guard"
)

var ErrListProductionQueryIsNotConstructed = errors.New(
	"ListProductionQuery must be created via NewListProductionQuery constructor",
)

// ListProductionQuery lists production log entries by date. With UnpaidOnly
// set, entries already paid are left out.
type ListProductionQuery struct {
	unpaidOnly bool

	guard guard.ConstructorGuard
}

func NewListProductionQuery(unpaidOnly bool) ListProductionQuery {
	return ListProductionQuery{unpaidOnly: unpaidOnly, guard: guard.NewConstructorGuard()}
}

func (q ListProductionQuery) Validate() error {
	return q.guard.Validate(ErrListProductionQueryIsNotConstructed)
}

func (q ListProductionQuery) UnpaidOnly() bool { return q.unpaidOnly }

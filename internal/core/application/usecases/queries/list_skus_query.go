package queries

import (
	"errors"

	"atelier/internal/pkg/guard"
)

var ErrListSKUsQueryIsNotConstructed = errors.New(
	"ListSKUsQuery must be created via NewListSKUsQuery constructor",
)

// ListSKUsQuery lists the whole catalog ordered by code.
type ListSKUsQuery struct {
	guard guard.ConstructorGuard
}

func NewListSKUsQuery() ListSKUsQuery {
	return ListSKUsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListSKUsQuery) Validate() error {
	return q.guard.Validate(ErrListSKUsQueryIsNotConstructed)
}

package queries

import (
	"errors"
	"strings"

	"atelier/internal/core/ports"
	"atelier/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders newest first. Every filter field is optional.
type ListOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter ports.OrderFilter) (ListOrdersQuery, error) {
	var statusErrs []error
	for _, s := range filter.Statuses {
		statusErrs = append(statusErrs, s.Validate())
	}

	if err := errors.Join(checkRange(filter.CreatedFrom, filter.CreatedTo), errors.Join(statusErrs...)); err != nil {
		return ListOrdersQuery{}, err
	}

	filter.Page = strings.TrimSpace(filter.Page)
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter { return q.filter }

package queries

import (
	"errors"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

const (
	DefaultAlertsLimit = 50
	MaxAlertsLimit     = 500
)

var ErrGetRecentAlertsQueryIsNotConstructed = errors.New(
	"GetRecentAlertsQuery must be created via NewGetRecentAlertsQuery constructor",
)

// GetRecentAlertsQuery lists operator alerts newest first. A zero limit
// means DefaultAlertsLimit.
type GetRecentAlertsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetRecentAlertsQuery(limit int) (GetRecentAlertsQuery, error) {
	if limit == 0 {
		limit = DefaultAlertsLimit
	}
	if limit < 1 || limit > MaxAlertsLimit {
		return GetRecentAlertsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxAlertsLimit)
	}
	return GetRecentAlertsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentAlertsQueryIsNotConstructed)
}

func (q GetRecentAlertsQuery) Limit() int { return q.limit }

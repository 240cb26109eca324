package queries

import (
	"errors"
	"strings"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrResolveSKUQueryIsNotConstructed = errors.New(
	"ResolveSKUQuery must be created via NewResolveSKUQuery constructor",
)

// ResolveSKUQuery resolves a code-or-name reference the way stock
// adjustments do, without writing anything.
type ResolveSKUQuery struct {
	reference string

	guard guard.ConstructorGuard
}

func NewResolveSKUQuery(reference string) (ResolveSKUQuery, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ResolveSKUQuery{}, errs.NewValueIsRequiredError("reference")
	}
	return ResolveSKUQuery{reference: reference, guard: guard.NewConstructorGuard()}, nil
}

func (q ResolveSKUQuery) Validate() error {
	return q.guard.Validate(ErrResolveSKUQueryIsNotConstructed)
}

func (q ResolveSKUQuery) Reference() string { return q.reference }

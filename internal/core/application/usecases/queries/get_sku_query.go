package queries

import (
	"errors"
	"strings"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetSKUQueryIsNotConstructed = errors.New(
	"GetSKUQuery must be created via NewGetSKUQuery constructor",
)

// GetSKUQuery reads one SKU by exact code.
type GetSKUQuery struct {
	code string

	guard guard.ConstructorGuard
}

func NewGetSKUQuery(code string) (GetSKUQuery, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return GetSKUQuery{}, errs.NewValueIsRequiredError("code")
	}
	return GetSKUQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSKUQuery) Validate() error {
	return q.guard.Validate(ErrGetSKUQueryIsNotConstructed)
}

func (q GetSKUQuery) Code() string { return q.code }

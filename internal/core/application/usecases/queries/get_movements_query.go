package queries

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetMovementsQueryIsNotConstructed = errors.New(
	"GetMovementsQuery must be created via NewGetMovementsQuery constructor",
)

// GetMovementsQuery reads the ledger by exactly one selector: a SKU code, a
// UTC day or a correlation ref.
//
// Example:
//
//	query, err := NewGetMovementsQuery("", nil, "100000001234") // movements of one order
type GetMovementsQuery struct {
	code string
	day  *time.Time
	ref  string

	guard guard.ConstructorGuard
}

func NewGetMovementsQuery(code string, day *time.Time, ref string) (GetMovementsQuery, error) {
	q := GetMovementsQuery{
		code:  strings.TrimSpace(code),
		day:   day,
		ref:   strings.TrimSpace(ref),
		guard: guard.NewConstructorGuard(),
	}

	selectors := 0
	if q.code != "" {
		selectors++
	}
	if q.day != nil {
		selectors++
	}
	if q.ref != "" {
		selectors++
	}

	switch selectors {
	case 0:
		return GetMovementsQuery{}, errs.NewValueIsRequiredError("code, date or ref")
	case 1:
		return q, nil
	default:
		return GetMovementsQuery{}, errs.NewValueIsInvalidErrorWithCause("selector",
			errors.New("use only one of code, date and ref"))
	}
}

func (q GetMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetMovementsQueryIsNotConstructed)
}

func (q GetMovementsQuery) Code() string    { return q.code }
func (q GetMovementsQuery) Day() *time.Time { return q.day }
func (q GetMovementsQuery) Ref() string     { return q.ref }

package http

import (
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer for optional values.
func queryParam(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

// dateRange reads "from" and "to". Both accept RFC 3339 or a plain date; a
// plain-date "to" covers that whole day.
func dateRange(c echo.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if err := queryParam(c, "from", &from); err != nil {
		return nil, nil, err
	}
	if err := queryParam(c, "to", &to); err != nil {
		return nil, nil, err
	}

	if to != nil && isMidnight(*to) && !strings.Contains(c.QueryParam("to"), "T") {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	return utc(from), utc(to), nil
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// amountParam reads an optional money amount; Arabic-Indic digits and
// thousands separators are accepted. A missing value is zero.
func amountParam(c echo.Context, name string) (decimal.Decimal, error) {
	var raw *string
	if err := queryParam(c, name, &raw); err != nil {
		return decimal.Zero, err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return decimal.Zero, nil
	}

	amount, err := kernel.ParseAmount(*raw)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return amount, nil
}

// amountField parses a money amount from a request body field.
func amountField(name, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	amount, err := kernel.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return amount, nil
}

package queries

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetProfitabilityReportQueryIsNotConstructed = errors.New(
		"GetProfitabilityReportQuery must be created via NewGetProfitabilityReportQuery constructor",
	)

	errRangeReversed = errs.NewValueIsInvalidErrorWithCause("range", errors.New("to is before from"))
)

// GetProfitabilityReportQuery builds the profitability report over a date range.
//
// Example:
//
//	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
//	query, err := NewGetProfitabilityReportQuery(&from, nil, "", decimal.NewFromInt(5000),
//	    decimal.NewFromInt(90000), decimal.Zero)
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, query)
//	fmt.Println(report.Summary.NetProfit)
type GetProfitabilityReportQuery struct {
	params services.ReportParams

	guard guard.ConstructorGuard
}

// NewGetProfitabilityReportQuery validates the range and the cost inputs.
// Nil bounds are open; costs must not be negative.
func NewGetProfitabilityReportQuery(
	from, to *time.Time,
	page string,
	shippingFeePerOrder, adsCost, otherCosts decimal.Decimal,
) (GetProfitabilityReportQuery, error) {
	costs := []struct {
		name  string
		value decimal.Decimal
	}{
		{"shippingFeePerOrder", shippingFeePerOrder},
		{"adsCost", adsCost},
		{"otherCosts", otherCosts},
	}

	var costErrs []error
	for _, c := range costs {
		if c.value.IsNegative() {
			costErrs = append(costErrs, errs.NewValueIsOutOfRangeError(c.name, c.value, 0, "unbounded"))
		}
	}

	if err := errors.Join(checkRange(from, to), errors.Join(costErrs...)); err != nil {
		return GetProfitabilityReportQuery{}, err
	}

	return GetProfitabilityReportQuery{
		params: services.ReportParams{
			From:                from,
			To:                  to,
			Page:                strings.TrimSpace(page),
			ShippingFeePerOrder: shippingFeePerOrder,
			AdsCost:             adsCost,
			OtherCosts:          otherCosts,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetProfitabilityReportQuery) Validate() error {
	return q.guard.Validate(ErrGetProfitabilityReportQueryIsNotConstructed)
}

func (q GetProfitabilityReportQuery) Params() services.ReportParams { return q.params }

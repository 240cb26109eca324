package http

import (
	"fmt"
	"net/http"

	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// GetProfitabilityReport handles GET /api/v1/reports/profitability.
//
// Query: from, to, page, shippingFee, ads, other. Costs accept
// Arabic-Indic digits and default to zero.
func (s *Server) GetProfitabilityReport(c echo.Context) error {
	report, err := s.profitability(c)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProfitabilityReport(report))
}

// ExportProfitabilityReport streams the same report as a workbook.
func (s *Server) ExportProfitabilityReport(c echo.Context) error {
	report, err := s.profitability(c)
	if err != nil {
		return s.respondError(c, err)
	}

	name := fmt.Sprintf("profitability-%s.xlsx", s.clock.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentType, s.exporter.ContentType())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Response().WriteHeader(http.StatusOK)

	if err = s.exporter.Export(c.Response(), report); err != nil {
		// Headers are already sent; the client sees a truncated body.
		s.logger.ErrorContext(c.Request().Context(), "export failed", "error", err)
		return err
	}
	return nil
}

// GetOrderStats handles GET /api/v1/reports/stats?from=&to=.
func (s *Server) GetOrderStats(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOrderStatsQuery(from, to)
	if err != nil {
		return s.respondError(c, err)
	}
	stats, err := s.h.OrderStats.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderStats(stats))
}

// GetAlerts handles GET /api/v1/alerts?limit=.
func (s *Server) GetAlerts(c echo.Context) error {
	var limit *int
	if err := queryParam(c, "limit", &limit); err != nil {
		return s.respondError(c, err)
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	query, err := queries.NewGetRecentAlertsQuery(n)
	if err != nil {
		return s.respondError(c, err)
	}
	recent, err := s.h.RecentAlerts.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]Alert, 0, len(recent))
	for _, a := range recent {
		response = append(response, Alert(a))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) profitability(c echo.Context) (services.Report, error) {
	from, to, err := dateRange(c)
	if err != nil {
		return services.Report{}, err
	}

	fee, err := amountParam(c, "shippingFee")
	if err != nil {
		return services.Report{}, err
	}
	ads, err := amountParam(c, "ads")
	if err != nil {
		return services.Report{}, err
	}
	other, err := amountParam(c, "other")
	if err != nil {
		return services.Report{}, err
	}

	query, err := queries.NewGetProfitabilityReportQuery(from, to, c.QueryParam("page"), fee, ads, other)
	if err != nil {
		return services.Report{}, err
	}
	return s.h.Profitability.Handle(c.Request().Context(), query)
}

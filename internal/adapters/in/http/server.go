// Package http is the inbound REST adapter. It translates JSON requests into
// commands and queries and maps their results and errors back to HTTP.
package http

import (
	"log/slog"
	"net/http"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	// Command handlers
	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrder       commands.UpdateOrderCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler
	ReplaceItems      commands.ReplaceOrderItemsCommandHandler
	TransitionOrder   commands.OrderTransitioner
	TransitionOrders  commands.TransitionOrdersCommandHandler
	MatchInvoice      commands.MatchInvoiceCommandHandler
	UpsertCatalogItem commands.UpsertCatalogItemCommandHandler
	AdjustStock       commands.StockAdjuster
	RecordProduction  commands.RecordProductionCommandHandler
	SetProductionPaid commands.SetProductionPaidCommandHandler

	// Query handlers
	GetOrder       queries.GetOrderQueryHandler
	ListOrders     queries.ListOrdersQueryHandler
	PendingOrders  queries.GetPendingOrdersQueryHandler
	GetSKU         queries.GetSKUQueryHandler
	ListSKUs       queries.ListSKUsQueryHandler
	ResolveSKU     queries.ResolveSKUQueryHandler
	Movements      queries.GetMovementsQueryHandler
	ListProduction queries.ListProductionQueryHandler
	Profitability  queries.GetProfitabilityReportQueryHandler
	OrderStats     queries.GetOrderStatsQueryHandler
	RecentAlerts   queries.GetRecentAlertsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h        Handlers
	exporter ports.ReportExporter
	clock    ports.Clock
	logger   *slog.Logger
}

func NewServer(h Handlers, exporter ports.ReportExporter, clock ports.Clock, logger *slog.Logger) *Server {
	return &Server{
		h:        h,
		exporter: exporter,
		clock:    clock,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts every route on e and installs the request validator.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/pending", s.GetPendingOrders)
	v1.POST("/orders/status", s.TransitionOrders)
	v1.POST("/orders/invoice-match", s.MatchInvoice)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id", s.UpdateOrder)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.PUT("/orders/:id/items", s.ReplaceOrderItems)
	v1.POST("/orders/:id/status", s.TransitionOrder)

	v1.GET("/inventory", s.ListSKUs)
	v1.POST("/inventory", s.UpsertCatalogItem)
	v1.GET("/inventory/resolve", s.ResolveSKU)
	v1.POST("/inventory/adjust", s.AdjustStock)
	v1.GET("/inventory/:code", s.GetSKU)
	v1.GET("/inventory/:code/movements", s.GetSKUMovements)
	v1.GET("/movements", s.GetMovements)

	v1.GET("/production", s.ListProduction)
	v1.POST("/production", s.RecordProduction)
	v1.PATCH("/production/:id/paid", s.SetProductionPaid)

	v1.GET("/reports/profitability", s.GetProfitabilityReport)
	v1.GET("/reports/profitability.xlsx", s.ExportProfitabilityReport)
	v1.GET("/reports/stats", s.GetOrderStats)

	v1.GET("/alerts", s.GetAlerts)
}

// bind decodes and validates a JSON body.
func bind(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return &validationError{fields: map[string]string{"body": "json"}}
	}
	return c.Validate(dest)
}


package http

import (
	"net/http"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListProduction handles GET /api/v1/production?unpaid=true.
func (s *Server) ListProduction(c echo.Context) error {
	var unpaid *bool
	if err := queryParam(c, "unpaid", &unpaid); err != nil {
		return s.respondError(c, err)
	}

	log, err := s.h.ListProduction.Handle(c.Request().Context(), queries.NewListProductionQuery(unpaid != nil && *unpaid))
	if err != nil {
		return s.respondError(c, err)
	}

	response := ProductionLog{Entries: make([]ProductionEntry, 0, len(log.Entries)), Unpaid: log.Unpaid}
	for _, e := range log.Entries {
		response.Entries = append(response.Entries, toProductionEntry(e))
	}
	return c.JSON(http.StatusOK, response)
}

// RecordProduction handles POST /api/v1/production. The finished pieces are
// added to stock in the same unit of work.
func (s *Server) RecordProduction(c echo.Context) error {
	var req ProductionRequest
	if err := bind(c, &req); err != nil {
		return s.respondError(c, err)
	}

	unitCost, err := amountField("unitCost", req.UnitCost)
	if err != nil {
		return s.respondError(c, err)
	}
	date := s.clock.Now()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	cmd, err := commands.NewRecordProductionCommand(kernel.NewUUID(), date, req.ProducerID, req.SKURef, req.Pieces, unitCost)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.RecordProduction.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, ProductionRecorded(result))
}

// SetProductionPaid handles PATCH /api/v1/production/:id/paid.
func (s *Server) SetProductionPaid(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req PaidRequest
	if err = bind(c, &req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewSetProductionPaidCommand(id, *req.Paid)
	if err != nil {
		return s.respondError(c, err)
	}
	if err = s.h.SetProductionPaid.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

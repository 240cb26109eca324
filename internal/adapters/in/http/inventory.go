package http

import (
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/inventory"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListSKUs handles GET /api/v1/inventory.
func (s *Server) ListSKUs(c echo.Context) error {
	skus, err := s.h.ListSKUs.Handle(c.Request().Context(), queries.NewListSKUsQuery())
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]SKU, 0, len(skus))
	for _, sku := range skus {
		response = append(response, toSKU(sku))
	}
	return c.JSON(http.StatusOK, response)
}

// GetSKU handles GET /api/v1/inventory/:code.
func (s *Server) GetSKU(c echo.Context) error {
	query, err := queries.NewGetSKUQuery(c.Param("code"))
	if err != nil {
		return s.respondError(c, err)
	}
	sku, err := s.h.GetSKU.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSKU(sku))
}

// ResolveSKU handles GET /api/v1/inventory/resolve?ref=. The reference is a
// code or a name; an ambiguous name answers 422 with the candidate codes.
func (s *Server) ResolveSKU(c echo.Context) error {
	query, err := queries.NewResolveSKUQuery(c.QueryParam("ref"))
	if err != nil {
		return s.respondError(c, err)
	}
	sku, err := s.h.ResolveSKU.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSKU(sku))
}

// UpsertCatalogItem handles POST /api/v1/inventory. An empty code matches
// by name and falls back to the next free code.
func (s *Server) UpsertCatalogItem(c echo.Context) error {
	var req CatalogItemRequest
	if err := bind(c, &req); err != nil {
		return s.respondError(c, err)
	}

	costs, salePrice, err := toCosts(req)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewUpsertCatalogItemCommand(req.Code, req.Name, req.Kind, costs, salePrice, req.OpeningQuantity)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.UpsertCatalogItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response := CatalogItemResult{Code: result.Code, Created: result.Created, Quantity: result.Quantity}
	if result.Warning != nil {
		response.Warning = result.Warning.Error()
	}
	return c.JSON(status, response)
}

// AdjustStock handles POST /api/v1/inventory/adjust.
func (s *Server) AdjustStock(c echo.Context) error {
	var req AdjustStockRequest
	if err := bind(c, &req); err != nil {
		return s.respondError(c, err)
	}

	kind, err := inventory.ParseMovementType(req.Type)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewAdjustStockCommand(req.Reference, req.Delta, kind, req.Ref, req.Notes)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.AdjustStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	response := Adjustment{
		Code:        result.Code,
		Name:        result.Name,
		Delta:       result.Delta,
		NewQuantity: result.NewQuantity,
	}
	if result.Warning != nil {
		response.Warning = result.Warning.Error()
	}
	return c.JSON(http.StatusOK, response)
}

// GetSKUMovements handles GET /api/v1/inventory/:code/movements.
func (s *Server) GetSKUMovements(c echo.Context) error {
	return s.movements(c, c.Param("code"))
}

// GetMovements handles GET /api/v1/movements?code=&date=&ref=. Exactly one
// filter must be given.
func (s *Server) GetMovements(c echo.Context) error {
	return s.movements(c, c.QueryParam("code"))
}

func (s *Server) movements(c echo.Context, code string) error {
	var day *time.Time
	if err := queryParam(c, "date", &day); err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetMovementsQuery(code, utc(day), c.QueryParam("ref"))
	if err != nil {
		return s.respondError(c, err)
	}
	movements, err := s.h.Movements.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMovements(movements))
}

func toCosts(req CatalogItemRequest) (inventory.Costs, decimal.Decimal, error) {
	var costs inventory.Costs
	var salePrice decimal.Decimal

	fields := []struct {
		name string
		raw  string
		dest *decimal.Decimal
	}{
		{"metersPerUnit", req.MetersPerUnit, &costs.MetersPerUnit},
		{"fabricPricePerMeter", req.FabricPricePerMeter, &costs.FabricPricePerMeter},
		{"sewingCost", req.SewingCost, &costs.SewingCost},
		{"accessoriesCost", req.AccessoriesCost, &costs.AccessoriesCost},
		{"extraCosts", req.ExtraCosts, &costs.ExtraCosts},
		{"salePrice", req.SalePrice, &salePrice},
	}

	for _, f := range fields {
		v, err := amountField(f.name, f.raw)
		if err != nil {
			return inventory.Costs{}, decimal.Zero, err
		}
		*f.dest = v
	}
	return costs, salePrice, nil
}

package http

import (
	"net/http"
	"strings"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return s.respondError(c, err)
	}

	id, err := kernel.NewOrderID(req.ID)
	if err != nil {
		return s.respondError(c, err)
	}
	details, err := toDetails(req.OrderDetailsRequest)
	if err != nil {
		return s.respondError(c, err)
	}
	items, err := toItems(req.Items)
	if err != nil {
		return s.respondError(c, err)
	}

	initial := order.Unknown
	if strings.TrimSpace(req.InitialStatus) != "" {
		if initial, err = order.ParseStatus(req.InitialStatus); err != nil {
			return s.respondError(c, err)
		}
	}

	cmd, err := commands.NewCreateOrderCommand(id, details, items, initial)
	if err != nil {
		return s.respondError(c, err)
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}

	return s.writeOrder(c, http.StatusCreated, id)
}

// ListOrders handles GET /api/v1/orders?status=&page=&from=&to=.
func (s *Server) ListOrders(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return s.respondError(c, err)
	}

	var rawStatuses []string
	if err = queryParam(c, "status", &rawStatuses); err != nil {
		return s.respondError(c, err)
	}
	statuses := make([]order.Status, 0, len(rawStatuses))
	for _, raw := range rawStatuses {
		status, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return s.respondError(c, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListOrdersQuery(ports.OrderFilter{
		Statuses:    statuses,
		Page:        c.QueryParam("page"),
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	orders, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrder(o))
	}
	return c.JSON(http.StatusOK, response)
}

// GetPendingOrders handles GET /api/v1/orders/pending?from=&to=.
func (s *Server) GetPendingOrders(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetPendingOrdersQuery(from, to)
	if err != nil {
		return s.respondError(c, err)
	}

	pending, err := s.h.PendingOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := PendingOrders{Orders: make([]PendingOrder, 0, len(pending.Orders)), Total: pending.Total}
	for _, p := range pending.Orders {
		response.Orders = append(response.Orders, PendingOrder{Order: toOrder(p.Order), Shares: p.Shares})
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.NewOrderID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return s.writeOrder(c, http.StatusOK, id)
}

// UpdateOrder handles PUT /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := kernel.NewOrderID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req OrderDetailsRequest
	if err = bind(c, &req); err != nil {
		return s.respondError(c, err)
	}
	details, err := toDetails(req)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(id, details)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderChange(result))
}

// DeleteOrder handles DELETE /api/v1/orders/:id. Stock is not touched.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := kernel.NewOrderID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.respondError(c, err)
	}
	if err = s.h.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReplaceOrderItems handles PUT /api/v1/orders/:id/items.
func (s *Server) ReplaceOrderItems(c echo.Context) error {
	id, err := kernel.NewOrderID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req ReplaceItemsRequest
	if err = bind(c, &req); err != nil {
		return s.respondError(c, err)
	}
	items, err := toItems(req.Items)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewReplaceOrderItemsCommand(id, items)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.ReplaceItems.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderChange(result))
}

// TransitionOrder handles POST /api/v1/orders/:id/status. A committed
// transition answers 200 even when some stock effects failed; those are
// listed under stock.failures.
func (s *Server) TransitionOrder(c echo.Context) error {
	id, err := kernel.NewOrderID(c.Param("id"))
	if err != nil {
		return s.respondError(c, err)
	}

	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return s.respondError(c, err)
	}
	to, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(id, to, req.Reason)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, toTransition(result))
}

// TransitionOrders handles POST /api/v1/orders/status. Every id gets its
// own outcome; the request as a whole succeeds.
func (s *Server) TransitionOrders(c echo.Context) error {
	var req BulkTransitionRequest
	if err := bind(c, &req); err != nil {
		return s.respondError(c, err)
	}
	to, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewTransitionOrdersCommand(req.OrderIDs, to, req.Reason)
	if err != nil {
		return s.respondError(c, err)
	}
	items, err := s.h.TransitionOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]BulkTransitionItem, 0, len(items))
	for _, item := range items {
		out := BulkTransitionItem{OrderID: item.OrderID}
		if item.Err != nil {
			code := statusOf(item.Err)
			out.Error = &Error{Code: code, Message: item.Err.Error()}
		} else {
			transition := toTransition(item.Result)
			out.Transition = &transition
		}
		response = append(response, out)
	}
	return c.JSON(http.StatusOK, response)
}

// MatchInvoice handles POST /api/v1/orders/invoice-match.
func (s *Server) MatchInvoice(c echo.Context) error {
	var req InvoiceMatchRequest
	if err := bind(c, &req); err != nil {
		return s.respondError(c, err)
	}

	lines := make([]commands.InvoiceLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, commands.InvoiceLine(line))
	}

	cmd, err := commands.NewMatchInvoiceCommand(lines)
	if err != nil {
		return s.respondError(c, err)
	}
	result, err := s.h.MatchInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	response := InvoiceMatch{
		Matched: make([]InvoiceMatched, 0, len(result.Matched)),
		Skipped: make([]InvoiceSkipped, 0, len(result.Skipped)),
	}
	for _, m := range result.Matched {
		response.Matched = append(response.Matched, InvoiceMatched{
			OrderID:    m.OrderID,
			Amount:     m.Amount,
			Transition: toTransition(m.Result),
		})
	}
	for _, sk := range result.Skipped {
		response.Skipped = append(response.Skipped, InvoiceSkipped{
			OrderID: sk.Line.OrderID,
			Amount:  sk.Line.Amount,
			Reason:  sk.Reason,
			Detail:  sk.Detail,
		})
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) writeOrder(c echo.Context, status int, id kernel.OrderID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.respondError(c, err)
	}
	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(status, toOrder(o))
}

func toDetails(req OrderDetailsRequest) (order.Details, error) {
	price, err := amountField("price", req.Price)
	if err != nil {
		return order.Details{}, err
	}
	return order.Details{
		Contact:           order.Contact{Name: strings.TrimSpace(req.CustomerName), Phone: strings.TrimSpace(req.Phone)},
		Address:           strings.TrimSpace(req.Address),
		Price:             price,
		Notes:             strings.TrimSpace(req.Notes),
		Page:              strings.TrimSpace(req.Page),
		ProductName:       strings.TrimSpace(req.ProductName),
		ClientOrdersCount: req.ClientOrdersCount,
	}, nil
}

func toItems(reqs []ItemRequest) ([]order.Item, error) {
	items := make([]order.Item, 0, len(reqs))
	for _, r := range reqs {
		item, err := order.NewItem(r.SKUCode, r.ProductName, r.Qty)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func toOrderChange(r commands.OrderChangeResult) OrderChange {
	return OrderChange{
		OrderID: r.OrderID,
		Status:  r.Status,
		Stock:   toStockReport(r.Stock),
	}
}

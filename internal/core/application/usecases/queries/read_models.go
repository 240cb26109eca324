// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries never change state: they read through a unit of work they always
// roll back, or through a consistent snapshot for reports.
package queries

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"

	"github.com/shopspring/decimal"
)

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID              string
	CreatedAt       time.Time
	Status          order.Status
	StatusUpdatedAt time.Time
	ShippingAt      *time.Time
	DeliveredAt     *time.Time
	ReturnedAt      *time.Time

	ContactName       string
	ContactPhone      string
	Address           string
	Price             decimal.Decimal
	Notes             string
	Page              string
	ProductName       string
	ClientOrdersCount int
	ReturnReason      string

	// Items is the effective item list. ExplicitItems is false for legacy
	// orders whose single item is derived from ProductName.
	Items         []OrderItemResponse
	ExplicitItems bool
}

type OrderItemResponse struct {
	SKUCode     string
	ProductName string
	Qty         int
}

func newOrderResponse(o *order.Order) OrderResponse {
	details := o.Details()
	items := o.Items()

	resp := OrderResponse{
		ID:                o.ID().String(),
		CreatedAt:         o.CreatedAt(),
		Status:            o.Status(),
		StatusUpdatedAt:   o.StatusUpdatedAt(),
		ShippingAt:        o.ShippingAt(),
		DeliveredAt:       o.DeliveredAt(),
		ReturnedAt:        o.ReturnedAt(),
		ContactName:       details.Contact.Name,
		ContactPhone:      details.Contact.Phone,
		Address:           details.Address,
		Price:             details.Price,
		Notes:             details.Notes,
		Page:              details.Page,
		ProductName:       details.ProductName,
		ClientOrdersCount: details.ClientOrdersCount,
		ReturnReason:      o.ReturnReason(),
		Items:             make([]OrderItemResponse, 0, len(items)),
		ExplicitItems:     o.HasExplicitItems(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			SKUCode:     item.SKUCode(),
			ProductName: item.ProductName(),
			Qty:         item.Qty(),
		})
	}
	return resp
}

// SKUResponse is the read model of a catalog item.
type SKUResponse struct {
	Code      string
	Name      string
	Kind      string
	Quantity  int
	Costs     inventory.Costs
	UnitCost  decimal.Decimal
	SalePrice decimal.Decimal
}

func newSKUResponse(s *inventory.SKU) SKUResponse {
	return SKUResponse{
		Code:      s.Code(),
		Name:      s.Name(),
		Kind:      s.Kind(),
		Quantity:  s.Quantity(),
		Costs:     s.Costs(),
		UnitCost:  s.UnitCost(),
		SalePrice: s.SalePrice(),
	}
}

type MovementResponse struct {
	ID           int64
	At           time.Time
	Code         string
	NameSnapshot string
	Delta        int
	Type         inventory.MovementType
	Ref          string
	Notes        string
}

func newMovementResponses(movements []inventory.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementResponse{
			ID:           m.ID(),
			At:           m.At(),
			Code:         m.Code(),
			NameSnapshot: m.NameSnapshot(),
			Delta:        m.Delta(),
			Type:         m.Type(),
			Ref:          m.Ref(),
			Notes:        m.Notes(),
		})
	}
	return out
}

type ProductionResponse struct {
	ID         string
	Date       time.Time
	ProducerID string
	SKURef     string
	SKUCode    string
	Pieces     int
	UnitCost   decimal.Decimal
	Total      decimal.Decimal
	Paid       bool
}

func newProductionResponse(e *production.Entry) ProductionResponse {
	return ProductionResponse{
		ID:         e.ID().String(),
		Date:       e.Date(),
		ProducerID: e.ProducerID(),
		SKURef:     e.SKURef(),
		SKUCode:    e.SKUCode(),
		Pieces:     e.Pieces(),
		UnitCost:   e.UnitCost(),
		Total:      e.Total(),
		Paid:       e.Paid(),
	}
}

// read runs fn in a unit of work that is always rolled back.
func read[T any](ctx context.Context, factory ports.UnitOfWorkFactory, fn func(uow ports.UnitOfWork) (T, error)) (T, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		var zero T
		return zero, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}

func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return errRangeReversed
	}
	return nil
}

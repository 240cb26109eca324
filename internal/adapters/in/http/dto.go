package http

import (
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Requests. Amounts and ids are strings so Arabic-Indic digits survive
// decoding; they are normalized by the domain constructors.

type ItemRequest struct {
	SKUCode     string `json:"skuCode"`
	ProductName string `json:"productName"`
	Qty         int    `json:"qty" validate:"gte=1"`
}

type OrderDetailsRequest struct {
	CustomerName      string `json:"customerName"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	Price             string `json:"price" validate:"required"`
	Notes             string `json:"notes"`
	Page              string `json:"page"`
	ProductName       string `json:"productName"`
	ClientOrdersCount int    `json:"clientOrdersCount" validate:"gte=0"`
}

type CreateOrderRequest struct {
	ID string `json:"id" validate:"required"`
	OrderDetailsRequest
	InitialStatus string        `json:"initialStatus" validate:"omitempty,oneof=Processing Ready processing ready"`
	Items         []ItemRequest `json:"items" validate:"dive"`
}

type ReplaceItemsRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

type BulkTransitionRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required,min=1"`
	Status   string   `json:"status" validate:"required"`
	Reason   string   `json:"reason"`
}

type InvoiceLineRequest struct {
	OrderID string `json:"orderId"`
	Amount  string `json:"amount"`
}

type InvoiceMatchRequest struct {
	Lines []InvoiceLineRequest `json:"lines" validate:"required,min=1"`
}

type CatalogItemRequest struct {
	Code                string `json:"code"`
	Name                string `json:"name" validate:"required"`
	Kind                string `json:"kind"`
	MetersPerUnit       string `json:"metersPerUnit"`
	FabricPricePerMeter string `json:"fabricPricePerMeter"`
	SewingCost          string `json:"sewingCost"`
	AccessoriesCost     string `json:"accessoriesCost"`
	ExtraCosts          string `json:"extraCosts"`
	SalePrice           string `json:"salePrice"`
	OpeningQuantity     int    `json:"openingQuantity"`
}

type AdjustStockRequest struct {
	Reference string `json:"reference" validate:"required"`
	Delta     int    `json:"delta" validate:"ne=0"`
	Type      string `json:"type" validate:"required"`
	Ref       string `json:"ref"`
	Notes     string `json:"notes"`
}

type ProductionRequest struct {
	Date       *time.Time `json:"date"`
	ProducerID string     `json:"producerId" validate:"required"`
	SKURef     string     `json:"skuRef" validate:"required"`
	Pieces     int        `json:"pieces" validate:"gte=1"`
	UnitCost   string     `json:"unitCost"`
}

type PaidRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

// Responses.

type OrderItem struct {
	SKUCode     string `json:"skuCode,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Qty         int    `json:"qty"`
}

type Order struct {
	ID                string          `json:"id"`
	CreatedAt         time.Time       `json:"createdAt"`
	Status            order.Status    `json:"status"`
	StatusUpdatedAt   time.Time       `json:"statusUpdatedAt"`
	ShippingAt        *time.Time      `json:"shippingAt,omitempty"`
	DeliveredAt       *time.Time      `json:"deliveredAt,omitempty"`
	ReturnedAt        *time.Time      `json:"returnedAt,omitempty"`
	CustomerName      string          `json:"customerName,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Address           string          `json:"address,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Notes             string          `json:"notes,omitempty"`
	Page              string          `json:"page,omitempty"`
	ProductName       string          `json:"productName,omitempty"`
	ClientOrdersCount int             `json:"clientOrdersCount"`
	ReturnReason      string          `json:"returnReason,omitempty"`
	Items             []OrderItem     `json:"items"`
	ExplicitItems     bool            `json:"explicitItems"`
}

type PendingOrder struct {
	Order
	Shares map[string]decimal.Decimal `json:"shares"`
}

type PendingOrders struct {
	Orders []PendingOrder  `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

type StockEffect struct {
	Reference string                 `json:"reference"`
	Delta     int                    `json:"delta"`
	Type      inventory.MovementType `json:"type,omitempty"`
	Code      string                 `json:"code,omitempty"`
	Quantity  *int                   `json:"quantity,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

type StockReport struct {
	Applied  []StockEffect `json:"applied"`
	Failures []StockEffect `json:"failures"`
	Warnings []string      `json:"warnings,omitempty"`
}

type Transition struct {
	OrderID string       `json:"orderId"`
	From    order.Status `json:"from"`
	To      order.Status `json:"to"`
	Stock   StockReport  `json:"stock"`
}

type OrderChange struct {
	OrderID string       `json:"orderId"`
	Status  order.Status `json:"status"`
	Stock   StockReport  `json:"stock"`
}

type BulkTransitionItem struct {
	OrderID    string      `json:"orderId"`
	Transition *Transition `json:"transition,omitempty"`
	Error      *Error      `json:"error,omitempty"`
}

type InvoiceMatch struct {
	Matched []InvoiceMatched `json:"matched"`
	Skipped []InvoiceSkipped `json:"skipped"`
}

type InvoiceMatched struct {
	OrderID    string          `json:"orderId"`
	Amount     decimal.Decimal `json:"amount"`
	Transition Transition      `json:"transition"`
}

type InvoiceSkipped struct {
	OrderID string `json:"orderId"`
	Amount  string `json:"amount"`
	Reason  string `json:"reason"`
	Detail  string `json:"detail,omitempty"`
}

type SKU struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	Kind                string          `json:"kind,omitempty"`
	Quantity            int             `json:"quantity"`
	MetersPerUnit       decimal.Decimal `json:"metersPerUnit"`
	FabricPricePerMeter decimal.Decimal `json:"fabricPricePerMeter"`
	SewingCost          decimal.Decimal `json:"sewingCost"`
	AccessoriesCost     decimal.Decimal `json:"accessoriesCost"`
	ExtraCosts          decimal.Decimal `json:"extraCosts"`
	UnitCost            decimal.Decimal `json:"unitCost"`
	SalePrice           decimal.Decimal `json:"salePrice"`
}

type CatalogItemResult struct {
	Code     string `json:"code"`
	Created  bool   `json:"created"`
	Quantity int    `json:"quantity"`
	Warning  string `json:"warning,omitempty"`
}

type Adjustment struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Delta       int    `json:"delta"`
	NewQuantity int    `json:"newQuantity"`
	Warning     string `json:"warning,omitempty"`
}

type Movement struct {
	ID    int64                  `json:"id"`
	At    time.Time              `json:"at"`
	Code  string                 `json:"code"`
	Name  string                 `json:"name"`
	Delta int                    `json:"delta"`
	Type  inventory.MovementType `json:"type"`
	Ref   string                 `json:"ref,omitempty"`
	Notes string                 `json:"notes,omitempty"`
}

type ProductionEntry struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	ProducerID string          `json:"producerId"`
	SKURef     string          `json:"skuRef"`
	SKUCode    string          `json:"skuCode,omitempty"`
	Pieces     int             `json:"pieces"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Total      decimal.Decimal `json:"total"`
	Paid       bool            `json:"paid"`
}

type ProductionLog struct {
	Entries []ProductionEntry `json:"entries"`
	Unpaid  decimal.Decimal   `json:"unpaid"`
}

type ProductionRecorded struct {
	EntryID     string          `json:"entryId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	NewQuantity int             `json:"newQuantity"`
	Total       decimal.Decimal `json:"total"`
}

type Alert struct {
	Kind    ports.AlertKind `json:"kind"`
	Subject string          `json:"subject"`
	Message string          `json:"message"`
	At      time.Time       `json:"at"`
}

// Mappers.

func toOrder(o queries.OrderResponse) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem(item))
	}
	return Order{
		ID:                o.ID,
		CreatedAt:         o.CreatedAt,
		Status:            o.Status,
		StatusUpdatedAt:   o.StatusUpdatedAt,
		ShippingAt:        o.ShippingAt,
		DeliveredAt:       o.DeliveredAt,
		ReturnedAt:        o.ReturnedAt,
		CustomerName:      o.ContactName,
		Phone:             o.ContactPhone,
		Address:           o.Address,
		Price:             o.Price,
		Notes:             o.Notes,
		Page:              o.Page,
		ProductName:       o.ProductName,
		ClientOrdersCount: o.ClientOrdersCount,
		ReturnReason:      o.ReturnReason,
		Items:             items,
		ExplicitItems:     o.ExplicitItems,
	}
}

func toSKU(s queries.SKUResponse) SKU {
	return SKU{
		Code:                s.Code,
		Name:                s.Name,
		Kind:                s.Kind,
		Quantity:            s.Quantity,
		MetersPerUnit:       s.Costs.MetersPerUnit,
		FabricPricePerMeter: s.Costs.FabricPricePerMeter,
		SewingCost:          s.Costs.SewingCost,
		AccessoriesCost:     s.Costs.AccessoriesCost,
		ExtraCosts:          s.Costs.ExtraCosts,
		UnitCost:            s.UnitCost,
		SalePrice:           s.SalePrice,
	}
}

func toMovements(in []queries.MovementResponse) []Movement {
	out := make([]Movement, 0, len(in))
	for _, m := range in {
		out = append(out, Movement{
			ID:    m.ID,
			At:    m.At,
			Code:  m.Code,
			Name:  m.NameSnapshot,
			Delta: m.Delta,
			Type:  m.Type,
			Ref:   m.Ref,
			Notes: m.Notes,
		})
	}
	return out
}

func toProductionEntry(e queries.ProductionResponse) ProductionEntry {
	return ProductionEntry(e)
}

func toStockReport(r commands.StockHookReport) StockReport {
	report := StockReport{
		Applied:  make([]StockEffect, 0, len(r.Applied)),
		Failures: make([]StockEffect, 0, len(r.Failures)),
	}
	for _, applied := range r.Applied {
		quantity := applied.NewQuantity
		report.Applied = append(report.Applied, StockEffect{
			Reference: applied.Code,
			Delta:     applied.Delta,
			Code:      applied.Code,
			Quantity:  &quantity,
		})
		if applied.Warning != nil {
			report.Warnings = append(report.Warnings, applied.Warning.Error())
		}
	}
	for _, failure := range r.Failures {
		report.Failures = append(report.Failures, StockEffect{
			Reference: failure.Effect.Reference,
			Delta:     failure.Effect.Delta,
			Type:      failure.Effect.Type,
			Error:     failure.Err.Error(),
		})
	}
	return report
}

func toTransition(r commands.TransitionOrderResult) Transition {
	return Transition{
		OrderID: r.OrderID,
		From:    r.From,
		To:      r.To,
		Stock:   toStockReport(r.Stock),
	}
}

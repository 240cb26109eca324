package order

import (
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ItemRecord is the persisted form of an Item.
type ItemRecord struct {
	SKUCode     string `json:"skuCode,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Qty         int    `json:"qty"`
}

// Record is the flat, persisted form of an Order. Records written by older
// versions may lack Status, StatusUpdatedAt or Items; RestoreOrder fills them.
type Record struct {
	ID                string          `json:"id"`
	CreatedAt         time.Time       `json:"createdAt"`
	Status            Status          `json:"status"`
	StatusUpdatedAt   time.Time       `json:"statusUpdatedAt"`
	ShippingAt        *time.Time      `json:"shippingAt,omitempty"`
	DeliveredAt       *time.Time      `json:"deliveredAt,omitempty"`
	ReturnedAt        *time.Time      `json:"returnedAt,omitempty"`
	CustomerName      string          `json:"customerName,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Address           string          `json:"address,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Items             []ItemRecord    `json:"items,omitempty"`
	ReturnReason      string          `json:"returnReason,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Page              string          `json:"page,omitempty"`
	ProductName       string          `json:"productName,omitempty"`
	ClientOrdersCount int             `json:"clientOrdersCount,omitempty"`
}

// Record flattens the order for persistence. Items holds only the explicit
// item list; the implicit legacy item is never written back.
func (o *Order) Record() Record {
	items := make([]ItemRecord, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemRecord{SKUCode: item.skuCode, ProductName: item.productName, Qty: item.qty})
	}

	return Record{
		ID:                o.id.String(),
		CreatedAt:         o.createdAt,
		Status:            o.status,
		StatusUpdatedAt:   o.statusUpdatedAt,
		ShippingAt:        copyTime(o.shippingAt),
		DeliveredAt:       copyTime(o.deliveredAt),
		ReturnedAt:        copyTime(o.returnedAt),
		CustomerName:      o.details.Contact.Name,
		Phone:             o.details.Contact.Phone,
		Address:           o.details.Address,
		Price:             o.details.Price,
		Items:             items,
		ReturnReason:      o.returnReason,
		Notes:             o.details.Notes,
		Page:              o.details.Page,
		ProductName:       o.details.ProductName,
		ClientOrdersCount: o.details.ClientOrdersCount,
	}
}

// RestoreOrder rebuilds an order from persistence without lifecycle checks.
// A missing status defaults to Ready, a missing statusUpdatedAt to createdAt
// and a non-positive legacy item quantity to 1.
func RestoreOrder(r Record) (*Order, error) {
	id, err := kernel.NewOrderID(r.ID)
	if err != nil {
		return nil, err
	}

	status := r.Status
	if status == Unknown {
		status = Ready
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	statusUpdatedAt := r.StatusUpdatedAt
	if statusUpdatedAt.IsZero() {
		statusUpdatedAt = r.CreatedAt
	}

	items := make([]Item, 0, len(r.Items))
	for idx, ir := range r.Items {
		qty := ir.Qty
		if qty < 1 {
			qty = 1
		}
		item, itemErr := NewItem(ir.SKUCode, ir.ProductName, qty)
		if itemErr != nil {
			return nil, fmt.Errorf("order %s item %d: %w", r.ID, idx, itemErr)
		}
		items = append(items, item)
	}

	details := Details{
		Contact:           Contact{Name: r.CustomerName, Phone: r.Phone},
		Address:           r.Address,
		Price:             r.Price,
		Notes:             r.Notes,
		Page:              r.Page,
		ProductName:       r.ProductName,
		ClientOrdersCount: r.ClientOrdersCount,
	}
	if err = details.validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		createdAt:       r.CreatedAt,
		status:          status,
		statusUpdatedAt: statusUpdatedAt,
		shippingAt:      copyTime(r.ShippingAt),
		deliveredAt:     copyTime(r.DeliveredAt),
		returnedAt:      copyTime(r.ReturnedAt),
		details:         details,
		items:           items,
		returnReason:    r.ReturnReason,
		isConstructed:   true,
	}, nil
}

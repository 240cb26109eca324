// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored as one row in "orders" plus its explicit items in "order_items".
// The implicit legacy item is derived from the order row and never stored.
package orderrepo

import (
	"time"

	"atelier/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and page are indexed for the pending list and the per-page report.
type OrderDTO struct {
	ID                string    `gorm:"type:varchar(12);primaryKey"`
	CreatedAt         time.Time `gorm:"index"`
	Status            int       `gorm:"index"`
	StatusUpdatedAt   time.Time
	ShippingAt        *time.Time
	DeliveredAt       *time.Time
	ReturnedAt        *time.Time
	CustomerName      string
	Phone             string
	Address           string
	Price             decimal.Decimal `gorm:"type:numeric(14,2)"`
	ReturnReason      string
	Notes             string
	Page              string `gorm:"index"`
	ProductName       string
	ClientOrdersCount int
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one explicit line of an order. Position keeps the order
// in which the items were entered.
type OrderItemDTO struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	OrderID     string `gorm:"type:varchar(12);index"`
	Position    int
	SKUCode     string
	ProductName string
	Qty         int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	r := aggregate.Record()

	items := make([]OrderItemDTO, 0, len(r.Items))
	for idx, item := range r.Items {
		items = append(items, OrderItemDTO{
			OrderID:     r.ID,
			Position:    idx,
			SKUCode:     item.SKUCode,
			ProductName: item.ProductName,
			Qty:         item.Qty,
		})
	}

	return OrderDTO{
		ID:                r.ID,
		CreatedAt:         r.CreatedAt,
		Status:            int(r.Status),
		StatusUpdatedAt:   r.StatusUpdatedAt,
		ShippingAt:        r.ShippingAt,
		DeliveredAt:       r.DeliveredAt,
		ReturnedAt:        r.ReturnedAt,
		CustomerName:      r.CustomerName,
		Phone:             r.Phone,
		Address:           r.Address,
		Price:             r.Price,
		ReturnReason:      r.ReturnReason,
		Notes:             r.Notes,
		Page:              r.Page,
		ProductName:       r.ProductName,
		ClientOrdersCount: r.ClientOrdersCount,
		Items:             items,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so rows written by
// older versions get the same defaults as any other legacy record.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]order.ItemRecord, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.ItemRecord{
			SKUCode:     item.SKUCode,
			ProductName: item.ProductName,
			Qty:         item.Qty,
		})
	}

	return order.RestoreOrder(order.Record{
		ID:                dto.ID,
		CreatedAt:         dto.CreatedAt.UTC(),
		Status:            order.Status(dto.Status),
		StatusUpdatedAt:   dto.StatusUpdatedAt.UTC(),
		ShippingAt:        utc(dto.ShippingAt),
		DeliveredAt:       utc(dto.DeliveredAt),
		ReturnedAt:        utc(dto.ReturnedAt),
		CustomerName:      dto.CustomerName,
		Phone:             dto.Phone,
		Address:           dto.Address,
		Price:             dto.Price,
		Items:             items,
		ReturnReason:      dto.ReturnReason,
		Notes:             dto.Notes,
		Page:              dto.Page,
		ProductName:       dto.ProductName,
		ClientOrdersCount: dto.ClientOrdersCount,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

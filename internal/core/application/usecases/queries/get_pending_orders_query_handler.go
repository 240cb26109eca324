package queries

import (
	"context"
	"sort"
	"time"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"

	"github.com/shopspring/decimal"
)

// PendingOrderResponse is a Shipping order with its price split across items.
type PendingOrderResponse struct {
	Order OrderResponse

	// Shares maps each item reference to its part of the order price. The
	// shares always sum to the price.
	Shares map[string]decimal.Decimal
}

type PendingOrdersResponse struct {
	Orders []PendingOrderResponse
	Total  decimal.Decimal
}

// GetPendingOrdersQueryHandler lists Shipping orders newest first by the time
// they entered Shipping.
type GetPendingOrdersQueryHandler struct {
	snapshots ports.SnapshotReader
}

func NewGetPendingOrdersQueryHandler(snapshots ports.SnapshotReader) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{snapshots: snapshots}
}

func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) (PendingOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return PendingOrdersResponse{}, err
	}

	snap, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		return PendingOrdersResponse{}, err
	}

	pending := make([]*order.Order, 0)
	for _, o := range snap.Orders {
		if at := shippedAt(o); o.Status() == order.Shipping && order.InRange(&at, query.From(), query.To()) {
			pending = append(pending, o)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := shippedAt(pending[i]), shippedAt(pending[j])
		if !a.Equal(b) {
			return a.After(b)
		}
		return pending[i].ID().String() > pending[j].ID().String()
	})

	resp := PendingOrdersResponse{Orders: make([]PendingOrderResponse, 0, len(pending)), Total: decimal.Zero}
	for _, o := range pending {
		resp.Orders = append(resp.Orders, PendingOrderResponse{
			Order:  newOrderResponse(o),
			Shares: services.PendingSplit(o),
		})
		resp.Total = resp.Total.Add(o.Price())
	}

	return resp, nil
}

// shippedAt falls back to the last status change for legacy records that
// never stamped shippingAt.
func shippedAt(o *order.Order) time.Time {
	if at := o.ShippingAt(); at != nil {
		return *at
	}
	return o.StatusUpdatedAt()
}

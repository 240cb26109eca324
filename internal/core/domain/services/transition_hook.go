package services

import (
	"sort"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
)

// StockEffect is one stock adjustment implied by an order change: a signed
// delta against the SKU an order item references.
type StockEffect struct {
	// Reference is the SKU code, or the product name when the item has no code.
	Reference string
	Delta     int
	Type      inventory.MovementType
}

// StockEffectPlanner decides the inventory side effects of order changes.
// It is pure: it never reads or writes stock, it only lists the adjustments
// the application layer must apply.
//
// Business rules:
//   - Every entry into Shipping withdraws each item's quantity, except from
//     Delivered, whose pieces already left the shelf
//   - Shipping -> Returned gives each item's quantity back
//   - Every other transition has no stock effect
//   - Replacing the items of a Shipping order adjusts stock by the signed
//     difference between the old and new lists, so the total withdrawn for
//     the order always matches its current items
//
// Example:
//
//	planner := services.NewStockEffectPlanner()
//	effects := planner.PlanTransition(order.Ready, order.Shipping, o.Items())
//	// [{Reference: "INV0001", Delta: -2, Type: inventory.Withdraw}]
type StockEffectPlanner struct{}

func NewStockEffectPlanner() StockEffectPlanner {
	return StockEffectPlanner{}
}

// PlanTransition lists the adjustments for moving an order with items from
// one status to another. Same-status pairs yield nothing.
func (StockEffectPlanner) PlanTransition(from, to order.Status, items []order.Item) []StockEffect {
	if from == to {
		return nil
	}

	switch {
	case to == order.Shipping && from != order.Delivered:
		return perItem(items, -1, inventory.Withdraw)
	case from == order.Shipping && to == order.Returned:
		return perItem(items, +1, inventory.Return)
	default:
		return nil
	}
}

// PlanItemChange lists the adjustments for replacing previous with current on
// an order in status. Only Shipping orders hold withdrawn stock, so any other
// status yields nothing. Effects are ordered by item key.
func (StockEffectPlanner) PlanItemChange(status order.Status, previous, current []order.Item) []StockEffect {
	if status != order.Shipping {
		return nil
	}

	type line struct {
		reference string
		qty       int
	}

	before := make(map[string]line, len(previous))
	for _, item := range previous {
		l := before[item.Key()]
		before[item.Key()] = line{reference: item.Reference(), qty: l.qty + item.Qty()}
	}

	after := make(map[string]line, len(current))
	for _, item := range current {
		l := after[item.Key()]
		after[item.Key()] = line{reference: item.Reference(), qty: l.qty + item.Qty()}
	}

	keys := make([]string, 0, len(before)+len(after))
	for k := range before {
		keys = append(keys, k)
	}
	for k := range after {
		if _, ok := before[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	effects := make([]StockEffect, 0, len(keys))
	for _, k := range keys {
		// more pieces on the order means less on the shelf
		delta := before[k].qty - after[k].qty
		if delta == 0 {
			continue
		}

		reference := after[k].reference
		if reference == "" {
			reference = before[k].reference
		}

		kind := inventory.Return
		if delta < 0 {
			kind = inventory.Withdraw
		}

		effects = append(effects, StockEffect{Reference: reference, Delta: delta, Type: kind})
	}

	return effects
}

func perItem(items []order.Item, sign int, kind inventory.MovementType) []StockEffect {
	effects := make([]StockEffect, 0, len(items))
	for _, item := range items {
		effects = append(effects, StockEffect{
			Reference: item.Reference(),
			Delta:     sign * item.Qty(),
			Type:      kind,
		})
	}
	return effects
}

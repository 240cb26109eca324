package order

import (
	"errors"
	"fmt"
	"strings"

	"atelier/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a quantity of a catalog SKU. The SKU is
// referenced by code when known and by product name otherwise.
type Item struct {
	skuCode     string
	productName string
	qty         int

	isConstructed bool
}

// NewItem requires a code or a name and a quantity of at least one.
func NewItem(skuCode, productName string, qty int) (Item, error) {
	item := Item{
		skuCode:       strings.TrimSpace(skuCode),
		productName:   strings.TrimSpace(productName),
		isConstructed: true,
	}

	var refErr error
	if item.skuCode == "" && item.productName == "" {
		refErr = errs.NewValueIsRequiredError("item sku code or product name")
	}

	var qtyErr error
	if qty < 1 {
		qtyErr = errs.NewValueIsOutOfRangeErrorWithCause("qty", qty, 1, "unbounded",
			fmt.Errorf("%d is less than 1", qty))
	}

	if err := errors.Join(refErr, qtyErr); err != nil {
		return Item{}, err
	}

	item.qty = qty
	return item, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) SKUCode() string     { return i.skuCode }
func (i Item) ProductName() string { return i.productName }
func (i Item) Qty() int            { return i.qty }

// Reference is what the inventory catalog resolves: the code when present,
// the product name otherwise.
func (i Item) Reference() string {
	if i.skuCode != "" {
		return i.skuCode
	}
	return i.productName
}

// Key identifies the item when two item lists are compared. Items with a code
// are keyed by code, the rest by name, so the two namespaces never collide.
func (i Item) Key() string {
	if i.skuCode != "" {
		return "code:" + i.skuCode
	}
	return "name:" + i.productName
}

// TotalQty sums the quantities of items.
func TotalQty(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.qty
	}
	return total
}

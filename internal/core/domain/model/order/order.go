package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Contact is who receives the parcel.
type Contact struct {
	Name  string
	Phone string
}

// Details holds the editable, non-lifecycle attributes of an order.
type Details struct {
	Contact Contact
	Address string
	Price   decimal.Decimal
	Notes   string

	// Page is the sales page (storefront) the order is attributed to.
	Page string

	// ProductName is the order's display name. Orders without an explicit item
	// list are treated as one piece of this product.
	ProductName string

	ClientOrdersCount int
}

func (d Details) validate() error {
	var priceErr, countErr error
	if d.Price.IsNegative() {
		priceErr = errs.NewValueIsOutOfRangeError("price", d.Price, 0, "unbounded")
	}
	if d.ClientOrdersCount < 0 {
		countErr = errs.NewValueIsOutOfRangeError("client orders count", d.ClientOrdersCount, 0, "unbounded")
	}
	return errors.Join(priceErr, countErr)
}

// Order is the aggregate root for a customer order: its status lifecycle and
// the items whose stock moves with that lifecycle.
//
// Order follows these invariants:
//   - The id is a valid OrderID and never changes
//   - Price is not negative
//   - Status changes go through Transition and are checked by a TransitionPolicy
//   - Typed timestamps (shippingAt, deliveredAt, returnedAt) are stamped on
//     entry to their status and never cleared
type Order struct {
	id              kernel.OrderID
	createdAt       time.Time
	status          Status
	statusUpdatedAt time.Time

	shippingAt  *time.Time
	deliveredAt *time.Time
	returnedAt  *time.Time

	details      Details
	items        []Item
	returnReason string

	isConstructed bool
}

// NewOrder creates an order in its initial status.
//
// Parameters:
//   - id: carrier tracking number
//   - details: contact, address, price and attribution
//   - items: order lines; may be empty only when details.ProductName is set
//   - initial: Processing or Ready; Unknown defaults to Ready
//   - now: creation time, also used as statusUpdatedAt
//
// Example:
//
//	id, _ := kernel.NewOrderID("100000001234")
//	item, _ := order.NewItem("INV0001", "Linen dress", 2)
//	o, err := order.NewOrder(id, order.Details{Price: decimal.NewFromInt(25000)},
//	    []order.Item{item}, order.Ready, time.Now())
func NewOrder(id kernel.OrderID, details Details, items []Item, initial Status, now time.Time) (*Order, error) {
	if initial == Unknown {
		initial = Ready
	}

	o := &Order{
		createdAt:       now,
		statusUpdatedAt: now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setInitialStatus(initial),
		o.setDetails(details),
		o.setItems(items, details.ProductName),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.OrderID         { return o.id }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) Status() Status             { return o.status }
func (o *Order) StatusUpdatedAt() time.Time { return o.statusUpdatedAt }
func (o *Order) ShippingAt() *time.Time     { return copyTime(o.shippingAt) }
func (o *Order) DeliveredAt() *time.Time    { return copyTime(o.deliveredAt) }
func (o *Order) ReturnedAt() *time.Time     { return copyTime(o.returnedAt) }
func (o *Order) Details() Details           { return o.details }
func (o *Order) Price() decimal.Decimal     { return o.details.Price }
func (o *Order) Page() string               { return o.details.Page }
func (o *Order) ReturnReason() string       { return o.returnReason }
func (o *Order) HasExplicitItems() bool     { return len(o.items) > 0 }
func (o *Order) IsEqual(other *Order) bool  { return other != nil && o.id.IsEqual(other.id) }

// Items returns the effective item list. A legacy order without items yields
// a single implicit item: one piece of the order's product name.
func (o *Order) Items() []Item {
	if len(o.items) > 0 {
		out := make([]Item, len(o.items))
		copy(out, o.items)
		return out
	}

	if o.details.ProductName == "" {
		return nil
	}

	return []Item{{productName: o.details.ProductName, qty: 1, isConstructed: true}}
}

// Transition moves the order to status to and returns the status it left.
//
// It stamps statusUpdatedAt and, for Shipping, Delivered and Returned, the
// matching typed timestamp. A non-empty reason is recorded as the return
// reason when moving to Returned. Transition has no stock effect of its own;
// callers plan one from (from, to, Items()).
func (o *Order) Transition(to Status, reason string, policy TransitionPolicy, now time.Time) (Status, error) {
	from := o.status
	if err := policy.Check(from, to); err != nil {
		return from, err
	}

	o.status = to
	o.statusUpdatedAt = now

	stamp := now
	switch to {
	case Shipping:
		o.shippingAt = &stamp
	case Delivered:
		o.deliveredAt = &stamp
	case Returned:
		o.returnedAt = &stamp
		if reason = strings.TrimSpace(reason); reason != "" {
			o.returnReason = reason
		}
	case Unknown, Processing, Ready:
	}

	return from, nil
}

// UpdateDetails replaces the editable attributes; status and items are untouched.
func (o *Order) UpdateDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

// ReplaceItems swaps the item list and returns the previous effective list so
// the caller can reconcile stock for an order that already left the workshop.
func (o *Order) ReplaceItems(items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	previous := o.Items()
	if err := o.setItems(items, o.details.ProductName); err != nil {
		return nil, err
	}

	return previous, nil
}

// InRange reports whether t lies in [from, to]. Nil bounds are open.
func InRange(t *time.Time, from, to *time.Time) bool {
	if t == nil {
		return false
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setInitialStatus(status Status) error {
	if !status.IsInitial() {
		return errs.NewValueIsInvalidErrorWithCause(
			"initial status",
			fmt.Errorf("%s is not Processing or Ready", status),
		)
	}
	o.status = status
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setItems(items []Item, productName string) error {
	if len(items) == 0 && strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("items or product name")
	}

	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

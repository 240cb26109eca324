// Package inventory models the stock side of the workshop: the SKU catalog
// and the append-only movement ledger.
//
// Stock is never set directly. Every change is a Movement (Production,
// Withdraw, Return or Manual) appended to the ledger and applied to the SKU
// in the same unit of work, which keeps a SKU's quantity on hand equal to the
// sum of its ledger deltas. Negative stock is allowed and reported as an
// alert by the application layer.
//
// References to SKUs coming from orders and the production log may be codes
// or names; Resolve turns them into a tagged Resolution and refuses to guess
// when a name is shared by several SKUs.
package inventory

package ports

import (
	"context"
	"errors"
)

// ErrLockNotObtained is returned by a Locker that gave up waiting for a key.
var ErrLockNotObtained = errors.New("lock not obtained")

// Unlock releases a lock obtained from Locker.Lock.
type Unlock func(ctx context.Context) error

// Locker serializes critical sections per key. Keys are "order:<id>",
// "catalog" and "sku:<code>"; a caller holding several takes them in that order.
//
// Example:
//
//	unlock, err := locker.Lock(ctx, "sku:INV0001")
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = unlock(context.WithoutCancel(ctx)) }()
type Locker interface {
	// Lock blocks until the key is free, ctx is done or the backend gives up.
	Lock(ctx context.Context, key string) (Unlock, error)
}

// OrderLockKey is the Locker key of an order.
func OrderLockKey(id string) string { return "order:" + id }

// SKULockKey is the Locker key of a SKU.
func SKULockKey(code string) string { return "sku:" + code }

// CatalogLockKey guards SKU creation and code generation. It is taken before
// any SKU key.
const CatalogLockKey = "catalog"

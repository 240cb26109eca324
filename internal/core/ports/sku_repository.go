package ports

import (
	"context"

	"atelier/internal/core/domain/model/inventory"
)

// SKURepository persists catalog items. Quantity on hand travels with the SKU
// but is only ever changed together with a ledger append in the same unit of work.
type SKURepository interface {
	// Add persists a new SKU. The code must be unused.
	Add(ctx context.Context, sku *inventory.SKU) error

	// Update persists metadata and quantity changes of an existing SKU.
	Update(ctx context.Context, sku *inventory.SKU) error

	// Get retrieves a SKU by its exact code. Returns errs.ErrObjectNotFound
	// when no SKU has that code.
	Get(ctx context.Context, code string) (*inventory.SKU, error)

	// FindByName returns every SKU whose name matches under inventory.NameKey.
	// An empty result is not an error.
	FindByName(ctx context.Context, name string) ([]*inventory.SKU, error)

	// List returns the whole catalog ordered by code.
	List(ctx context.Context) ([]*inventory.SKU, error)

	// Codes returns every SKU code, used for code generation.
	Codes(ctx context.Context) ([]string, error)
}

// ResolveSKU resolves a code-or-name reference against the repository.
// Exact code wins; a name resolves only when exactly one SKU carries it.
//
// Example:
//
//	res, err := ports.ResolveSKU(ctx, uow.SKURepository(), "Linen dress")
//	if err != nil {
//	    return err
//	}
//	if err := res.Err(); err != nil {
//	    return err // errs.ErrObjectNotFound or errs.ErrAmbiguousReference
//	}
//	fmt.Println(res.SKU.Code())
func ResolveSKU(ctx context.Context, repo SKURepository, reference string) (inventory.Resolution, error) {
	byCode, err := repo.Get(ctx, reference)
	if err != nil && !isNotFound(err) {
		return inventory.Resolution{}, err
	}
	if byCode != nil {
		return inventory.Resolve(reference, byCode, nil), nil
	}

	byName, err := repo.FindByName(ctx, reference)
	if err != nil {
		return inventory.Resolution{}, err
	}

	return inventory.Resolve(reference, nil, byName), nil
}

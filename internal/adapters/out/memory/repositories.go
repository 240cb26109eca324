package memory

import (
	"context"
	"sort"
	"time"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	id := aggregate.ID().String()
	if staged, ok := r.uow.orders[id]; ok {
		if !staged.deleted {
			return errs.NewAlreadyExistsError("order", id)
		}
		r.uow.orders[id] = stagedOrder{record: aggregate.Record()}
		return nil
	}

	if _, exists := r.uow.store.committedOrder(id); exists {
		return errs.NewAlreadyExistsError("order", id)
	}

	r.uow.orders[id] = stagedOrder{record: aggregate.Record(), added: true}
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	id := aggregate.ID().String()
	if staged, ok := r.uow.orders[id]; ok {
		if staged.deleted {
			return errs.NewObjectNotFoundError("order", id)
		}
		r.uow.orders[id] = stagedOrder{record: aggregate.Record(), added: staged.added}
		return nil
	}

	if _, exists := r.uow.store.committedOrder(id); !exists {
		return errs.NewObjectNotFoundError("order", id)
	}

	r.uow.orders[id] = stagedOrder{record: aggregate.Record()}
	return nil
}

func (r *orderRepository) Delete(_ context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	key := id.String()
	if staged, ok := r.uow.orders[key]; ok {
		switch {
		case staged.deleted:
			return errs.NewObjectNotFoundError("order", key)
		case staged.added:
			delete(r.uow.orders, key)
		default:
			r.uow.orders[key] = stagedOrder{deleted: true}
		}
		return nil
	}

	if _, exists := r.uow.store.committedOrder(key); !exists {
		return errs.NewObjectNotFoundError("order", key)
	}

	r.uow.orders[key] = stagedOrder{deleted: true}
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	key := id.String()
	if staged, ok := r.uow.orders[key]; ok {
		if staged.deleted {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return order.RestoreOrder(staged.record)
	}

	record, exists := r.uow.store.committedOrder(key)
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", key)
	}

	return order.RestoreOrder(record)
}

func (r *orderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	records := r.uow.store.committedOrders()
	for id, staged := range r.uow.orders {
		if staged.deleted {
			delete(records, id)
			continue
		}
		records[id] = staged.record
	}

	out := make([]*order.Order, 0, len(records))
	for _, record := range records {
		o, err := order.RestoreOrder(record)
		if err != nil {
			return nil, err
		}
		if filter.Matches(o) {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		return a.ID().String() > b.ID().String()
	})

	return out, nil
}

type skuRepository struct {
	uow *UnitOfWork
}

func (r *skuRepository) Add(_ context.Context, sku *inventory.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	code := sku.Code()
	if _, staged := r.uow.skus[code]; staged {
		return errs.NewAlreadyExistsError("sku", code)
	}
	if _, exists := r.uow.store.committedSKU(code); exists {
		return errs.NewAlreadyExistsError("sku", code)
	}

	r.uow.skus[code] = stagedSKU{record: sku.Record(), added: true}
	return nil
}

func (r *skuRepository) Update(_ context.Context, sku *inventory.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	code := sku.Code()
	if staged, ok := r.uow.skus[code]; ok {
		r.uow.skus[code] = stagedSKU{record: sku.Record(), added: staged.added}
		return nil
	}
	if _, exists := r.uow.store.committedSKU(code); !exists {
		return errs.NewObjectNotFoundError("sku", code)
	}

	r.uow.skus[code] = stagedSKU{record: sku.Record()}
	return nil
}

func (r *skuRepository) Get(_ context.Context, code string) (*inventory.SKU, error) {
	if staged, ok := r.uow.skus[code]; ok {
		return inventory.RestoreSKU(staged.record)
	}

	record, exists := r.uow.store.committedSKU(code)
	if !exists {
		return nil, errs.NewObjectNotFoundError("sku", code)
	}

	return inventory.RestoreSKU(record)
}

func (r *skuRepository) FindByName(ctx context.Context, name string) ([]*inventory.SKU, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	key := inventory.NameKey(name)
	out := make([]*inventory.SKU, 0, 1)
	for _, sku := range all {
		if inventory.NameKey(sku.Name()) == key {
			out = append(out, sku)
		}
	}

	return out, nil
}

func (r *skuRepository) List(_ context.Context) ([]*inventory.SKU, error) {
	records := r.merged()

	out := make([]*inventory.SKU, 0, len(records))
	for _, code := range sortedKeys(records) {
		sku, err := inventory.RestoreSKU(records[code])
		if err != nil {
			return nil, err
		}
		out = append(out, sku)
	}

	return out, nil
}

func (r *skuRepository) Codes(_ context.Context) ([]string, error) {
	return sortedKeys(r.merged()), nil
}

func (r *skuRepository) merged() map[string]inventory.SKURecord {
	records := r.uow.store.committedSKUs()
	for code, staged := range r.uow.skus {
		records[code] = staged.record
	}
	return records
}

type movementLedger struct {
	uow *UnitOfWork
}

func (l *movementLedger) Append(_ context.Context, movement inventory.Movement) error {
	if movement.Delta() == 0 {
		return errs.NewValueIsInvalidError("delta")
	}
	l.uow.ensureStaging()

	record := movement.Record()
	record.ID = 0
	l.uow.movements = append(l.uow.movements, record)
	return nil
}

func (l *movementLedger) QueryByCode(_ context.Context, code string) ([]inventory.Movement, error) {
	return l.query(func(r inventory.MovementRecord) bool { return r.Code == code })
}

func (l *movementLedger) QueryByDate(_ context.Context, day time.Time) ([]inventory.Movement, error) {
	want := day.UTC().Format(time.DateOnly)
	return l.query(func(r inventory.MovementRecord) bool { return r.At.UTC().Format(time.DateOnly) == want })
}

func (l *movementLedger) QueryByRef(_ context.Context, ref string) ([]inventory.Movement, error) {
	return l.query(func(r inventory.MovementRecord) bool { return r.Ref == ref })
}

func (l *movementLedger) QueryRange(_ context.Context, from, to *time.Time) ([]inventory.Movement, error) {
	return l.query(func(r inventory.MovementRecord) bool {
		at := r.At
		return order.InRange(&at, from, to)
	})
}

// query filters committed movements followed by staged ones. Staged
// movements carry the ids they will get if the unit of work commits now.
func (l *movementLedger) query(keep func(inventory.MovementRecord) bool) ([]inventory.Movement, error) {
	records := l.uow.store.committedMovements()

	next := int64(1)
	if n := len(records); n > 0 {
		next = records[n-1].ID + 1
	}
	for _, r := range l.uow.movements {
		r.ID = next
		next++
		records = append(records, r)
	}

	out := make([]inventory.Movement, 0)
	for _, r := range records {
		if !keep(r) {
			continue
		}
		m, err := inventory.RestoreMovement(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

type productionRepository struct {
	uow *UnitOfWork
}

func (r *productionRepository) Add(_ context.Context, entry *production.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	id := entry.ID().String()
	if _, staged := r.uow.production[id]; staged {
		return errs.NewAlreadyExistsError("production entry", id)
	}
	if _, exists := r.uow.store.committedEntry(id); exists {
		return errs.NewAlreadyExistsError("production entry", id)
	}

	r.uow.production[id] = stagedEntry{record: entry.Record(), added: true}
	return nil
}

func (r *productionRepository) Update(_ context.Context, entry *production.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.uow.ensureStaging()

	id := entry.ID().String()
	if staged, ok := r.uow.production[id]; ok {
		r.uow.production[id] = stagedEntry{record: entry.Record(), added: staged.added}
		return nil
	}
	if _, exists := r.uow.store.committedEntry(id); !exists {
		return errs.NewObjectNotFoundError("production entry", id)
	}

	r.uow.production[id] = stagedEntry{record: entry.Record()}
	return nil
}

func (r *productionRepository) Get(_ context.Context, id kernel.UUID) (*production.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	key := id.String()
	if staged, ok := r.uow.production[key]; ok {
		return production.RestoreEntry(staged.record)
	}

	record, exists := r.uow.store.committedEntry(key)
	if !exists {
		return nil, errs.NewObjectNotFoundError("production entry", key)
	}

	return production.RestoreEntry(record)
}

func (r *productionRepository) List(_ context.Context) ([]*production.Entry, error) {
	records := r.uow.store.committedEntries()
	for id, staged := range r.uow.production {
		records[id] = staged.record
	}

	out := make([]*production.Entry, 0, len(records))
	for _, record := range records {
		entry, err := production.RestoreEntry(record)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date().Equal(out[j].Date()) {
			return out[i].Date().Before(out[j].Date())
		}
		return out[i].ID().String() < out[j].ID().String()
	})

	return out, nil
}

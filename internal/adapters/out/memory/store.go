// Package memory is the default storage backend: the whole state lives in
// process memory, is changed only through units of work and is flushed to a
// JSON document on disk.
//
// Commits are serialized by one mutex and bump a version counter. Reporting
// reads get an immutable snapshot cached per version, so identical reads
// between two commits share one copy.
package memory

import (
	"context"
	"sort"
	"sync"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"
)

// Store holds the committed state.
type Store struct {
	mu sync.RWMutex

	version    uint64
	orders     map[string]order.Record
	skus       map[string]inventory.SKURecord
	movements  []inventory.MovementRecord
	production map[string]production.Record

	snapshotMu sync.Mutex
	snapshot   *ports.Snapshot
}

func NewStore() *Store {
	return &Store{
		orders:     make(map[string]order.Record),
		skus:       make(map[string]inventory.SKURecord),
		production: make(map[string]production.Record),
	}
}

// Version is incremented by every successful commit.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns the committed state as aggregates. The result is shared
// by all callers until the next commit and must not be modified.
func (s *Store) Snapshot(_ context.Context) (ports.Snapshot, error) {
	s.snapshotMu.Lock()
	defer s.snapshotMu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot != nil && s.snapshot.Version == s.version {
		return *s.snapshot, nil
	}

	snap := ports.Snapshot{
		Version:   s.version,
		Orders:    make([]*order.Order, 0, len(s.orders)),
		SKUs:      make([]*inventory.SKU, 0, len(s.skus)),
		Movements: make([]inventory.Movement, 0, len(s.movements)),
	}

	for _, r := range s.orders {
		o, err := order.RestoreOrder(r)
		if err != nil {
			return ports.Snapshot{}, err
		}
		snap.Orders = append(snap.Orders, o)
	}
	sort.Slice(snap.Orders, func(i, j int) bool {
		return snap.Orders[i].ID().String() < snap.Orders[j].ID().String()
	})

	for _, code := range sortedKeys(s.skus) {
		sku, err := inventory.RestoreSKU(s.skus[code])
		if err != nil {
			return ports.Snapshot{}, err
		}
		snap.SKUs = append(snap.SKUs, sku)
	}

	for _, r := range s.movements {
		m, err := inventory.RestoreMovement(r)
		if err != nil {
			return ports.Snapshot{}, err
		}
		snap.Movements = append(snap.Movements, m)
	}

	s.snapshot = &snap
	return snap, nil
}

// NewUnitOfWork starts an isolated unit of work over the store.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s}
}

// UnitOfWorkFactory adapts the store to ports.UnitOfWorkFactory.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.store.NewUnitOfWork()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) committedOrder(id string) (order.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.orders[id]
	return r, ok
}

func (s *Store) committedOrders() map[string]order.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.orders)
}

func (s *Store) committedSKU(code string) (inventory.SKURecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.skus[code]
	return r, ok
}

func (s *Store) committedSKUs() map[string]inventory.SKURecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.skus)
}

func (s *Store) committedMovements() []inventory.MovementRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]inventory.MovementRecord, len(s.movements))
	copy(out, s.movements)
	return out
}

func (s *Store) committedEntry(id string) (production.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.production[id]
	return r, ok
}

func (s *Store) committedEntries() map[string]production.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.production)
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

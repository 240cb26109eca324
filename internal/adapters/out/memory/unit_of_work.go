package memory

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback outside Begin.
var ErrNoTransaction = errors.New("no active transaction")

type stagedOrder struct {
	record  order.Record
	added   bool
	deleted bool
}

type stagedSKU struct {
	record inventory.SKURecord
	added  bool
}

type stagedEntry struct {
	record production.Record
	added  bool
}

// UnitOfWork stages changes privately and applies them to the store in one
// step on Commit. Reads see the committed state overlaid with the changes
// staged so far. A UnitOfWork is used by one goroutine at a time.
type UnitOfWork struct {
	store  *Store
	active bool

	orders     map[string]stagedOrder
	skus       map[string]stagedSKU
	movements  []inventory.MovementRecord
	production map[string]stagedEntry
}

// Begin starts staging. Calling it again inside a transaction is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.reset()
	uow.active = true
	return nil
}

// Commit validates the staged changes against the committed state and applies
// all of them, or none. Movements receive consecutive ids after the current
// maximum.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := uow.check(); err != nil {
		return err
	}

	for id, staged := range uow.orders {
		if staged.deleted {
			delete(s.orders, id)
			continue
		}
		s.orders[id] = staged.record
	}

	for code, staged := range uow.skus {
		s.skus[code] = staged.record
	}

	next := int64(1)
	if n := len(s.movements); n > 0 {
		next = s.movements[n-1].ID + 1
	}
	for _, m := range uow.movements {
		m.ID = next
		next++
		s.movements = append(s.movements, m)
	}

	for id, staged := range uow.production {
		s.production[id] = staged.record
	}

	s.version++
	uow.reset()
	return nil
}

func (uow *UnitOfWork) check() error {
	s := uow.store
	var problems []error

	for id, staged := range uow.orders {
		_, exists := s.orders[id]
		switch {
		case staged.added && exists:
			problems = append(problems, errs.NewAlreadyExistsError("order", id))
		case !staged.added && !exists:
			problems = append(problems, errs.NewObjectNotFoundError("order", id))
		}
	}

	for code, staged := range uow.skus {
		_, exists := s.skus[code]
		switch {
		case staged.added && exists:
			problems = append(problems, errs.NewAlreadyExistsError("sku", code))
		case !staged.added && !exists:
			problems = append(problems, errs.NewObjectNotFoundError("sku", code))
		}
	}

	for _, m := range uow.movements {
		if _, staged := uow.skus[m.Code]; !staged {
			if _, exists := s.skus[m.Code]; !exists {
				problems = append(problems, errs.NewObjectNotFoundError("sku", m.Code))
			}
		}
	}

	for id, staged := range uow.production {
		_, exists := s.production[id]
		switch {
		case staged.added && exists:
			problems = append(problems, errs.NewAlreadyExistsError("production entry", id))
		case !staged.added && !exists:
			problems = append(problems, errs.NewObjectNotFoundError("production entry", id))
		}
	}

	return errors.Join(problems...)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	uow.reset()
	return nil
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.orders = make(map[string]stagedOrder)
	uow.skus = make(map[string]stagedSKU)
	uow.movements = nil
	uow.production = make(map[string]stagedEntry)
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) SKURepository() ports.SKURepository {
	return &skuRepository{uow: uow}
}

func (uow *UnitOfWork) MovementLedger() ports.MovementLedger {
	return &movementLedger{uow: uow}
}

func (uow *UnitOfWork) ProductionLogRepository() ports.ProductionLogRepository {
	return &productionRepository{uow: uow}
}

// ensureStaging lets repositories be used outside Begin; such changes are
// staged but only reach the store through Begin and Commit.
func (uow *UnitOfWork) ensureStaging() {
	if uow.orders == nil {
		uow.reset()
	}
}

package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
)

const documentFormat = 1

// document is the on-disk form of the store.
type document struct {
	Format     int                        `json:"format"`
	Orders     []order.Record             `json:"orders"`
	SKUs       []inventory.SKURecord      `json:"skus"`
	Movements  []inventory.MovementRecord `json:"movements"`
	Production []production.Record        `json:"production"`
}

// Load reads a store from path. A missing file yields an empty store.
// Records written by older versions are default-filled on the way in.
func Load(path string) (*Store, error) {
	s := NewStore()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	var doc document
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	for _, r := range doc.Orders {
		o, restoreErr := order.RestoreOrder(r)
		if restoreErr != nil {
			return nil, fmt.Errorf("order %q: %w", r.ID, restoreErr)
		}
		s.orders[o.ID().String()] = o.Record()
	}

	for _, r := range doc.SKUs {
		sku, restoreErr := inventory.RestoreSKU(r)
		if restoreErr != nil {
			return nil, fmt.Errorf("sku %q: %w", r.Code, restoreErr)
		}
		s.skus[sku.Code()] = sku.Record()
	}

	sort.Slice(doc.Movements, func(i, j int) bool { return doc.Movements[i].ID < doc.Movements[j].ID })
	for _, r := range doc.Movements {
		m, restoreErr := inventory.RestoreMovement(r)
		if restoreErr != nil {
			return nil, fmt.Errorf("movement %d: %w", r.ID, restoreErr)
		}
		s.movements = append(s.movements, m.Record())
	}

	for _, r := range doc.Production {
		entry, restoreErr := production.RestoreEntry(r)
		if restoreErr != nil {
			return nil, fmt.Errorf("production entry %q: %w", r.ID, restoreErr)
		}
		s.production[entry.ID().String()] = entry.Record()
	}

	return s, nil
}

// Save writes the committed state to path through a temporary file and a
// rename, so a crash never leaves a half-written document. It returns the
// version that was written.
func (s *Store) Save(path string) (uint64, error) {
	s.mu.RLock()
	version := s.version
	doc := document{
		Format:     documentFormat,
		Orders:     make([]order.Record, 0, len(s.orders)),
		SKUs:       make([]inventory.SKURecord, 0, len(s.skus)),
		Movements:  make([]inventory.MovementRecord, len(s.movements)),
		Production: make([]production.Record, 0, len(s.production)),
	}
	for _, id := range sortedKeys(s.orders) {
		doc.Orders = append(doc.Orders, s.orders[id])
	}
	for _, code := range sortedKeys(s.skus) {
		doc.SKUs = append(doc.SKUs, s.skus[code])
	}
	copy(doc.Movements, s.movements)
	for _, id := range sortedKeys(s.production) {
		doc.Production = append(doc.Production, s.production[id])
	}
	s.mu.RUnlock()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err = tmp.Close(); err != nil {
		return 0, err
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}

	return version, nil
}

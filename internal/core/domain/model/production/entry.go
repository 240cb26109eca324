// Package production models the sewing workshop's production log. Each entry
// records pieces delivered by a producer and, on creation, feeds a Production
// movement into the inventory ledger.
package production

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one delivery of finished pieces by a producer.
type Entry struct {
	id         kernel.UUID
	date       time.Time
	producerID string
	skuRef     string
	skuCode    string
	pieces     int
	unitCost   decimal.Decimal
	paid       bool

	isConstructed bool
}

// NewEntry records pieces of the SKU referenced by skuRef (code or name).
// The resolved code is attached later with Resolve, once the catalog has
// confirmed the reference.
func NewEntry(id kernel.UUID, date time.Time, producerID, skuRef string, pieces int, unitCost decimal.Decimal) (*Entry, error) {
	e := &Entry{
		date:          date,
		producerID:    strings.TrimSpace(producerID),
		skuRef:        strings.TrimSpace(skuRef),
		isConstructed: true,
	}

	var refErr, piecesErr, costErr, producerErr error
	if e.skuRef == "" {
		refErr = errs.NewValueIsRequiredError("model")
	}
	if e.producerID == "" {
		producerErr = errs.NewValueIsRequiredError("producer id")
	}
	if pieces < 1 {
		piecesErr = errs.NewValueIsOutOfRangeError("pieces", pieces, 1, "unbounded")
	}
	if unitCost.IsNegative() {
		costErr = errs.NewValueIsOutOfRangeError("unit cost", unitCost, 0, "unbounded")
	}

	if err := errors.Join(id.Validate(), refErr, producerErr, piecesErr, costErr); err != nil {
		return nil, err
	}

	e.id = id
	e.pieces = pieces
	e.unitCost = unitCost
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID           { return e.id }
func (e *Entry) Date() time.Time           { return e.date }
func (e *Entry) ProducerID() string        { return e.producerID }
func (e *Entry) SKURef() string            { return e.skuRef }
func (e *Entry) SKUCode() string           { return e.skuCode }
func (e *Entry) Pieces() int               { return e.pieces }
func (e *Entry) UnitCost() decimal.Decimal { return e.unitCost }
func (e *Entry) Paid() bool                { return e.paid }

// Total is pieces × unit cost, the amount owed to the producer.
func (e *Entry) Total() decimal.Decimal {
	return e.unitCost.Mul(decimal.NewFromInt(int64(e.pieces)))
}

// Resolve attaches the catalog code the reference resolved to.
func (e *Entry) Resolve(code string) {
	e.skuCode = code
}

// SetPaid marks the entry paid or unpaid.
func (e *Entry) SetPaid(paid bool) {
	e.paid = paid
}

// Record is the flat, persisted form of an Entry.
type Record struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	ProducerID string          `json:"producerId"`
	SKURef     string          `json:"skuRef"`
	SKUCode    string          `json:"skuCode,omitempty"`
	Pieces     int             `json:"pieces"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Paid       bool            `json:"paid"`
}

func (e *Entry) Record() Record {
	return Record{
		ID:         e.id.String(),
		Date:       e.date,
		ProducerID: e.producerID,
		SKURef:     e.skuRef,
		SKUCode:    e.skuCode,
		Pieces:     e.pieces,
		UnitCost:   e.unitCost,
		Paid:       e.paid,
	}
}

func RestoreEntry(r Record) (*Entry, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	e, err := NewEntry(id, r.Date, r.ProducerID, r.SKURef, r.Pieces, r.UnitCost)
	if err != nil {
		return nil, err
	}
	e.skuCode = r.SKUCode
	e.paid = r.Paid
	return e, nil
}

package commands

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordProductionCommandIsNotConstructed = errors.New(
	"RecordProductionCommand must be created via NewRecordProductionCommand constructor",
)

// RecordProductionCommand logs pieces delivered by a producer. The handler
// adds them to stock as a Production movement whose ref is the entry id.
type RecordProductionCommand struct {
	entryID    kernel.UUID
	date       time.Time
	producerID string
	skuRef     string
	pieces     int
	unitCost   decimal.Decimal

	guard guard.ConstructorGuard
}

func NewRecordProductionCommand(
	entryID kernel.UUID,
	date time.Time,
	producerID, skuRef string,
	pieces int,
	unitCost decimal.Decimal,
) (RecordProductionCommand, error) {
	draft, err := production.NewEntry(entryID, date, producerID, skuRef, pieces, unitCost)
	if err != nil {
		return RecordProductionCommand{}, err
	}

	return RecordProductionCommand{
		entryID:    draft.ID(),
		date:       draft.Date(),
		producerID: draft.ProducerID(),
		skuRef:     draft.SKURef(),
		pieces:     draft.Pieces(),
		unitCost:   draft.UnitCost(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordProductionCommand) Validate() error {
	return c.guard.Validate(ErrRecordProductionCommandIsNotConstructed)
}

func (c RecordProductionCommand) EntryID() kernel.UUID      { return c.entryID }
func (c RecordProductionCommand) Date() time.Time           { return c.date }
func (c RecordProductionCommand) ProducerID() string        { return c.producerID }
func (c RecordProductionCommand) SKURef() string            { return c.skuRef }
func (c RecordProductionCommand) Pieces() int               { return c.pieces }
func (c RecordProductionCommand) UnitCost() decimal.Decimal { return c.unitCost }

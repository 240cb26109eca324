// Package productionrepo persists the production log.
package productionrepo

import (
	"time"

	"atelier/internal/core/domain/model/production"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date       time.Time `gorm:"index"`
	ProducerID string    `gorm:"index"`
	SKURef     string
	SKUCode    string
	Pieces     int
	UnitCost   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Paid       bool            `gorm:"index"`
}

func (EntryDTO) TableName() string {
	return "production_entries"
}

func fromDomain(entry *production.Entry) EntryDTO {
	r := entry.Record()
	return EntryDTO{
		ID:         entry.ID().Bytes(),
		Date:       r.Date,
		ProducerID: r.ProducerID,
		SKURef:     r.SKURef,
		SKUCode:    r.SKUCode,
		Pieces:     r.Pieces,
		UnitCost:   r.UnitCost,
		Paid:       r.Paid,
	}
}

func toDomain(dto EntryDTO) (*production.Entry, error) {
	return production.RestoreEntry(production.Record{
		ID:         dto.ID.String(),
		Date:       dto.Date.UTC(),
		ProducerID: dto.ProducerID,
		SKURef:     dto.SKURef,
		SKUCode:    dto.SKUCode,
		Pieces:     dto.Pieces,
		UnitCost:   dto.UnitCost,
		Paid:       dto.Paid,
	})
}

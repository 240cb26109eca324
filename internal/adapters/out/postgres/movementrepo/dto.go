// Package movementrepo is the append-only stock ledger table.
package movementrepo

import (
	"time"

	"atelier/internal/core/domain/model/inventory"
)

// MovementDTO is one ledger row. IDs are assigned by the repository, not by
// a sequence, so they stay gap-free and follow commit order.
type MovementDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false"`
	At           time.Time `gorm:"index"`
	Code         string    `gorm:"type:varchar(32);index"`
	NameSnapshot string
	Delta        int
	Type         int
	Ref          string `gorm:"index"`
	Notes        string
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

func fromDomain(m inventory.Movement, id int64) MovementDTO {
	return MovementDTO{
		ID:           id,
		At:           m.At(),
		Code:         m.Code(),
		NameSnapshot: m.NameSnapshot(),
		Delta:        m.Delta(),
		Type:         int(m.Type()),
		Ref:          m.Ref(),
		Notes:        m.Notes(),
	}
}

func toDomain(dto MovementDTO) (inventory.Movement, error) {
	return inventory.RestoreMovement(inventory.MovementRecord{
		ID:           dto.ID,
		At:           dto.At.UTC(),
		Code:         dto.Code,
		NameSnapshot: dto.NameSnapshot,
		Delta:        dto.Delta,
		Type:         inventory.MovementType(dto.Type),
		Ref:          dto.Ref,
		Notes:        dto.Notes,
	})
}

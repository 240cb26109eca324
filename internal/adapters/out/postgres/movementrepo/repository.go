package movementrepo

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/inventory"

	"gorm.io/gorm"
)

// GormMovementLedger implements MovementLedger using GORM.
//
// Append takes an EXCLUSIVE table lock before reading max(id). The lock lives
// until the surrounding transaction ends, so ids are unique and increase in
// commit order. Readers are not blocked by it.
type GormMovementLedger struct {
	db *gorm.DB
}

func NewGormMovementLedger(db *gorm.DB) *GormMovementLedger {
	return &GormMovementLedger{db: db}
}

func (l *GormMovementLedger) Append(ctx context.Context, movement inventory.Movement) error {
	db := l.db.WithContext(ctx)

	if err := db.Exec("LOCK TABLE " + MovementDTO{}.TableName() + " IN EXCLUSIVE MODE").Error; err != nil {
		return err
	}

	var maxID int64
	if err := db.Model(&MovementDTO{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return err
	}

	dto := fromDomain(movement, maxID+1)
	return db.Create(&dto).Error
}

func (l *GormMovementLedger) QueryByCode(ctx context.Context, code string) ([]inventory.Movement, error) {
	return l.find(l.db.WithContext(ctx).Where("code = ?", code))
}

// QueryByDate returns the movements of the UTC calendar day containing day.
func (l *GormMovementLedger) QueryByDate(ctx context.Context, day time.Time) ([]inventory.Movement, error) {
	u := day.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	return l.find(l.db.WithContext(ctx).
		Where("at >= ? AND at < ?", start, start.AddDate(0, 0, 1)))
}

func (l *GormMovementLedger) QueryByRef(ctx context.Context, ref string) ([]inventory.Movement, error) {
	return l.find(l.db.WithContext(ctx).Where("ref = ?", ref))
}

func (l *GormMovementLedger) QueryRange(ctx context.Context, from, to *time.Time) ([]inventory.Movement, error) {
	query := l.db.WithContext(ctx)
	if from != nil {
		query = query.Where("at >= ?", *from)
	}
	if to != nil {
		query = query.Where("at <= ?", *to)
	}
	return l.find(query)
}

func (l *GormMovementLedger) find(query *gorm.DB) ([]inventory.Movement, error) {
	var dtos []MovementDTO
	if err := query.Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	movements := make([]inventory.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

package productionrepo

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// GormProductionLogRepository implements ProductionLogRepository using GORM.
type GormProductionLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormProductionLogRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionLogRepository {
	return &GormProductionLogRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormProductionLogRepository) Add(ctx context.Context, entry *production.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("production entry", entry.ID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(entry.ID().String(), entry)
	return nil
}

func (r *GormProductionLogRepository) Update(ctx context.Context, entry *production.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("production entry", entry.ID().String())
	}

	r.tracker.TrackAggregate(entry.ID().String(), entry)
	return nil
}

func (r *GormProductionLogRepository) Get(ctx context.Context, id kernel.UUID) (*production.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("production entry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns every entry ordered by date, then id.
func (r *GormProductionLogRepository) List(ctx context.Context) ([]*production.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Order("date").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*production.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

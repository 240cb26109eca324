package skurepo

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// GormSKURepository implements SKURepository using GORM.
//
// Inside a transaction Get locks the row (SELECT ... FOR UPDATE), so two
// processes adjusting the same SKU serialize in the database even when they
// do not share a Locker.
type GormSKURepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	lockRow bool
}

// NewGormSKURepository creates a repository. lockRow must only be set when db
// is a transaction.
func NewGormSKURepository(db *gorm.DB, tracker aggregateTracker, lockRow bool) *GormSKURepository {
	return &GormSKURepository{
		db:      db,
		tracker: tracker,
		lockRow: lockRow,
	}
}

func (r *GormSKURepository) Add(ctx context.Context, sku *inventory.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sku)
	var count int64
	if err := r.db.WithContext(ctx).Model(&SKUDTO{}).Where("code = ?", dto.Code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewAlreadyExistsError("sku", dto.Code)
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("sku", dto.Code)
		}
		return err
	}

	r.tracker.TrackAggregate(dto.Code, sku)
	return nil
}

func (r *GormSKURepository) Update(ctx context.Context, sku *inventory.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sku)
	result := r.db.WithContext(ctx).Model(&SKUDTO{}).Where("code = ?", dto.Code).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sku", dto.Code)
	}

	r.tracker.TrackAggregate(dto.Code, sku)
	return nil
}

// Get retrieves a SKU by its exact code.
func (r *GormSKURepository) Get(ctx context.Context, code string) (*inventory.SKU, error) {
	query := r.db.WithContext(ctx)
	if r.lockRow {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto SKUDTO
	if err := query.First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sku", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormSKURepository) FindByName(ctx context.Context, name string) ([]*inventory.SKU, error) {
	key := inventory.NameKey(name)
	if key == "" {
		return nil, nil
	}

	var dtos []SKUDTO
	if err := r.db.WithContext(ctx).Where("name_key = ?", key).Order("code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormSKURepository) List(ctx context.Context) ([]*inventory.SKU, error) {
	var dtos []SKUDTO
	if err := r.db.WithContext(ctx).Order("code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormSKURepository) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&SKUDTO{}).Order("code").Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

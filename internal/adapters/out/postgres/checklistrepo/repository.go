package checklistrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormChecklistRepository struct {
	db *gorm.DB
}

func NewGormChecklistRepository(db *gorm.DB) *GormChecklistRepository {
	return &GormChecklistRepository{db: db}
}

func (r *GormChecklistRepository) Add(ctx context.Context, c *checklist.Checklist) error {
	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update overwrites every column of the checklist, zero values included.
func (r *GormChecklistRepository) Update(ctx context.Context, c *checklist.Checklist) error {
	dto := fromDomain(c)
	result := r.db.WithContext(ctx).Model(&ChecklistDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "shipment_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("checklist", c.ID().String())
	}
	return nil
}

func (r *GormChecklistRepository) Get(ctx context.Context, id kernel.UUID) (*checklist.Checklist, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChecklistDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checklist", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

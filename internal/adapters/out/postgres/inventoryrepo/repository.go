package inventoryrepo

import (
	"context"

	"shipping/internal/core/domain/model/inventory"
	"shipping/internal/pkg/pgerr"

	"gorm.io/gorm"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// AddAll inserts the entries in one statement. An entry for a line item that already reached
// inventory is a conflict and nothing is inserted.
func (r *GormInventoryRepository) AddAll(ctx context.Context, entries []*inventory.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, fromDomain(e))
	}

	return pgerr.Conflict(r.db.WithContext(ctx).Create(&dtos).Error, "inventory entry")
}

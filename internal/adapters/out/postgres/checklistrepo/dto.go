// Package checklistrepo stores shipment condition checklists.
package checklistrepo

import (
	"time"

	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ChecklistDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID            uuid.UUID  `gorm:"type:uuid;index;not null"`
	WarehouseID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductsComplete      bool       `gorm:"not null;default:false"`
	PackagingIntact       bool       `gorm:"not null;default:false"`
	TemperatureAdequate   bool       `gorm:"not null;default:false"`
	NoVisibleDamage       bool       `gorm:"not null;default:false"`
	DocumentationComplete bool       `gorm:"not null;default:false"`
	Condition             string     `gorm:"type:varchar(16);not null"`
	ReviewerID            *uuid.UUID `gorm:"type:uuid"`
	Notes                 string     `gorm:"type:text"`
	CreatedAt             time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (ChecklistDTO) TableName() string {
	return "shipment_checklists"
}

func fromDomain(c *checklist.Checklist) ChecklistDTO {
	flags := c.Flags()
	dto := ChecklistDTO{
		ID:                    c.ID().Bytes(),
		ShipmentID:            c.ShipmentID().Bytes(),
		WarehouseID:           c.WarehouseID().Bytes(),
		ProductsComplete:      flags.ProductsComplete,
		PackagingIntact:       flags.PackagingIntact,
		TemperatureAdequate:   flags.TemperatureAdequate,
		NoVisibleDamage:       flags.NoVisibleDamage,
		DocumentationComplete: flags.DocumentationComplete,
		Condition:             c.Condition().String(),
		Notes:                 c.Notes(),
		CreatedAt:             c.CreatedAt(),
		UpdatedAt:             c.UpdatedAt(),
	}
	if id := c.ReviewerID(); id != nil {
		raw := id.Bytes()
		dto.ReviewerID = &raw
	}
	return dto
}

func toDomain(dto ChecklistDTO) (*checklist.Checklist, error) {
	condition, err := checklist.ParseGrade(dto.Condition)
	if err != nil {
		return nil, err
	}

	var reviewerID *kernel.UUID
	if dto.ReviewerID != nil {
		id := kernel.MustUUIDFromRaw(*dto.ReviewerID)
		reviewerID = &id
	}

	return checklist.Restore(
		kernel.MustUUIDFromRaw(dto.ID),
		kernel.MustUUIDFromRaw(dto.ShipmentID),
		kernel.MustUUIDFromRaw(dto.WarehouseID),
		checklist.Flags{
			ProductsComplete:      dto.ProductsComplete,
			PackagingIntact:       dto.PackagingIntact,
			TemperatureAdequate:   dto.TemperatureAdequate,
			NoVisibleDamage:       dto.NoVisibleDamage,
			DocumentationComplete: dto.DocumentationComplete,
		},
		condition,
		reviewerID,
		dto.Notes,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

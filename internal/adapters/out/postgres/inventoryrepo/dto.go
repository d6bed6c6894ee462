// Package inventoryrepo stores the inventory entries created when a shipment is delivered.
package inventoryrepo

import (
	"time"

	"shipping/internal/core/domain/model/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO is the inventory_entries table. One row per delivered line item.
type EntryDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ShipmentID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	LineItemID  uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	TotalWeight decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	ReceivedAt  time.Time       `gorm:"not null"`
	Status      string          `gorm:"type:varchar(16);not null;default:available"`
}

func (EntryDTO) TableName() string {
	return "inventory_entries"
}

func fromDomain(e *inventory.Entry) EntryDTO {
	return EntryDTO{
		ID:          e.ID().Bytes(),
		WarehouseID: e.WarehouseID().Bytes(),
		ShipmentID:  e.ShipmentID().Bytes(),
		ProductID:   e.ProductID().Bytes(),
		LineItemID:  e.LineItemID().Bytes(),
		Quantity:    e.Quantity(),
		TotalWeight: e.TotalWeight(),
		ReceivedAt:  e.ReceivedAt(),
		Status:      e.Status(),
	}
}

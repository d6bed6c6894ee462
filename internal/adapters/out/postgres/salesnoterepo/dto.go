// Package salesnoterepo stores issued sales notes. A note is written once and never updated.
package salesnoterepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/salesnote"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesNoteDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number        string          `gorm:"type:varchar(32);uniqueIndex:idx_sales_notes_number;not null"`
	ShipmentID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_sales_notes_shipment_id;not null"`
	ShipmentCode  string          `gorm:"type:varchar(32);not null"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null"`
	WarehouseName string          `gorm:"type:varchar(255)"`
	AddressLine   string          `gorm:"type:varchar(512)"`
	TotalQuantity decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	TotalWeight   decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IssuedAt      time.Time       `gorm:"not null"`
}

func (SalesNoteDTO) TableName() string {
	return "sales_notes"
}

func fromDomain(n *salesnote.SalesNote) SalesNoteDTO {
	return SalesNoteDTO{
		ID:            n.ID().Bytes(),
		Number:        n.Number(),
		ShipmentID:    n.ShipmentID().Bytes(),
		ShipmentCode:  n.ShipmentCode().String(),
		WarehouseID:   n.WarehouseID().Bytes(),
		WarehouseName: n.WarehouseName(),
		AddressLine:   n.AddressLine(),
		TotalQuantity: n.TotalQuantity(),
		TotalWeight:   n.TotalWeight(),
		TotalPrice:    n.TotalPrice(),
		IssuedAt:      n.IssuedAt(),
	}
}

func toDomain(dto SalesNoteDTO) (*salesnote.SalesNote, error) {
	return salesnote.Restore(salesnote.Snapshot{
		ID:            kernel.MustUUIDFromRaw(dto.ID),
		Number:        dto.Number,
		ShipmentID:    kernel.MustUUIDFromRaw(dto.ShipmentID),
		ShipmentCode:  shipment.Code(dto.ShipmentCode),
		WarehouseID:   kernel.MustUUIDFromRaw(dto.WarehouseID),
		WarehouseName: dto.WarehouseName,
		AddressLine:   dto.AddressLine,
		TotalQuantity: dto.TotalQuantity,
		TotalWeight:   dto.TotalWeight,
		TotalPrice:    dto.TotalPrice,
		IssuedAt:      dto.IssuedAt,
	})
}

// Package trackingrepo stores simulated tracking points. Points are append-only.
package trackingrepo

import (
	"time"

	"shipping/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type PointDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;index:idx_tracking_points_shipment_captured,priority:1;not null"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	Speed      float64   `gorm:"type:double precision;not null"`
	CapturedAt time.Time `gorm:"index:idx_tracking_points_shipment_captured,priority:2;not null"`
}

func (PointDTO) TableName() string {
	return "tracking_points"
}

func fromDomain(p *tracking.Point) PointDTO {
	return PointDTO{
		ID:         p.ID().Bytes(),
		ShipmentID: p.ShipmentID().Bytes(),
		Latitude:   p.Position().Latitude(),
		Longitude:  p.Position().Longitude(),
		Speed:      p.Speed(),
		CapturedAt: p.CapturedAt(),
	}
}

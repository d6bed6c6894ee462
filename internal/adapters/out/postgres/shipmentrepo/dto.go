// Package shipmentrepo persists the shipment aggregate: the shipment row, its line items and
// its active assignment.
package shipmentrepo

import (
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the shipments table. Totals are denormalized for the read side.
type ShipmentDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code                string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	WarehouseID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	AddressID           *uuid.UUID      `gorm:"type:uuid"`
	Status              string          `gorm:"type:varchar(16);index;not null"`
	TotalQuantity       decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	TotalWeight         decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes               string          `gorm:"type:text"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime:false"`
	EstimatedDeliveryAt *time.Time
	TransitStartedAt    *time.Time
	DeliveredAt         *time.Time
	CancelledAt         *time.Time
	Version             int64 `gorm:"not null;default:0"`

	Items      []ItemDTO      `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Assignment *AssignmentDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ItemDTO is one line item. Position keeps the order in which items were requested.
type ItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UnitWeight  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalWeight decimal.Decimal `gorm:"type:numeric(14,3);not null"`
}

func (ItemDTO) TableName() string {
	return "shipment_items"
}

// AssignmentDTO is the active carrier assignment. The unique shipment id keeps at most one
// assignment per shipment.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CarrierID  uuid.UUID `gorm:"type:uuid;index;not null"`
	VehicleID  uuid.UUID `gorm:"type:uuid;index;not null"`
	AssignedAt time.Time `gorm:"not null"`
	AcceptedAt *time.Time
	RejectedAt *time.Time
}

func (AssignmentDTO) TableName() string {
	return "shipment_assignments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                  s.ID().Bytes(),
		Code:                s.Code().String(),
		WarehouseID:         s.WarehouseID().Bytes(),
		Status:              s.Status().String(),
		TotalQuantity:       s.TotalQuantity(),
		TotalWeight:         s.TotalWeight(),
		TotalPrice:          s.TotalPrice(),
		Notes:               s.Notes(),
		CreatedAt:           s.CreatedAt(),
		EstimatedDeliveryAt: s.EstimatedDeliveryAt(),
		TransitStartedAt:    s.TransitStartedAt(),
		DeliveredAt:         s.DeliveredAt(),
		CancelledAt:         s.CancelledAt(),
		Version:             s.Version(),
		Assignment:          assignmentFromDomain(s.ID(), s.Assignment()),
	}
	if id := s.AddressID(); id != nil {
		raw := id.Bytes()
		dto.AddressID = &raw
	}

	for i, it := range s.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          it.ID().Bytes(),
			ShipmentID:  dto.ID,
			Position:    i,
			ProductID:   it.ProductID().Bytes(),
			Quantity:    it.Quantity(),
			UnitWeight:  it.UnitWeight(),
			UnitPrice:   it.UnitPrice(),
			Subtotal:    it.Subtotal(),
			TotalWeight: it.TotalWeight(),
		})
	}

	return dto
}

func assignmentFromDomain(shipmentID kernel.UUID, a *shipment.Assignment) *AssignmentDTO {
	if a == nil {
		return nil
	}
	return &AssignmentDTO{
		ID:         a.ID().Bytes(),
		ShipmentID: shipmentID.Bytes(),
		CarrierID:  a.CarrierID().Bytes(),
		VehicleID:  a.VehicleID().Bytes(),
		AssignedAt: a.AssignedAt(),
		AcceptedAt: a.AcceptedAt(),
		RejectedAt: a.RejectedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var addressID *kernel.UUID
	if dto.AddressID != nil {
		aID, addrErr := kernel.UUIDFromBytes((*dto.AddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		addressID = &aID
	}

	items := make([]*shipment.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := shipment.NewLineItem(
			kernel.MustUUIDFromRaw(it.ID),
			kernel.MustUUIDFromRaw(it.ProductID),
			it.Quantity,
			it.UnitWeight,
			it.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var assignment *shipment.Assignment
	if a := dto.Assignment; a != nil {
		assignment, err = shipment.RestoreAssignment(
			kernel.MustUUIDFromRaw(a.ID),
			kernel.MustUUIDFromRaw(a.CarrierID),
			kernel.MustUUIDFromRaw(a.VehicleID),
			a.AssignedAt,
			a.AcceptedAt,
			a.RejectedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	s, err := shipment.Restore(shipment.Snapshot{
		ID:                  id,
		Code:                shipment.Code(dto.Code),
		WarehouseID:         warehouseID,
		AddressID:           addressID,
		Status:              status,
		Items:               items,
		Assignment:          assignment,
		Notes:               dto.Notes,
		CreatedAt:           dto.CreatedAt,
		EstimatedDeliveryAt: dto.EstimatedDeliveryAt,
		TransitStartedAt:    dto.TransitStartedAt,
		DeliveredAt:         dto.DeliveredAt,
		CancelledAt:         dto.CancelledAt,
		Version:             dto.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("stored shipment %s: %w", id, err)
	}
	return s, nil
}

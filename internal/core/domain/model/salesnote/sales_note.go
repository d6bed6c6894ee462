// Package salesnote models the sales note issued once per delivered shipment.
//
// A note is a snapshot: totals and destination metadata are copied at issue time and are never
// recomputed from the shipment afterwards.
package salesnote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const numberPrefix = "NV"

var (
	ErrShipmentNotDelivered = errs.NewValueIsInvalidError("shipment must be delivered before issuing a sales note")
	// ErrAlreadyIssued is returned by stores when the shipment already has a note.
	// Any other conflict on insert is a real failure.
	ErrAlreadyIssued = errs.NewConflictError("sales note", "already issued for shipment")
)

// Destination is the warehouse metadata captured into the note.
type Destination struct {
	WarehouseName string
	AddressLine   string
}

// SalesNote is immutable once built.
type SalesNote struct {
	id            kernel.UUID
	number        string
	shipmentID    kernel.UUID
	shipmentCode  shipment.Code
	warehouseID   kernel.UUID
	warehouseName string
	addressLine   string
	totalQuantity decimal.Decimal
	totalWeight   decimal.Decimal
	totalPrice    decimal.Decimal
	issuedAt      time.Time
}

// Number formats NV-YYYYMMDD-<shipment code body>, for example
// "NV-20261016-20261015-ABC123" for shipment ENV-20261015-ABC123 delivered on 2026-10-16.
// The code body keeps numbers unique across shipments whose random suffixes collide.
func Number(issuedAt time.Time, code shipment.Code) string {
	return fmt.Sprintf("%s-%s-%s", numberPrefix, issuedAt.UTC().Format("20060102"), code.Body())
}

// Issue snapshots a delivered shipment. The number uses the delivery date so a note re-issued
// later by a retry carries the same number.
func Issue(id kernel.UUID, s *shipment.Shipment, dest Destination, now time.Time) (*SalesNote, error) {
	if err := errors.Join(id.Validate(), s.Validate()); err != nil {
		return nil, err
	}
	if s.Status() != shipment.Delivered || s.DeliveredAt() == nil {
		return nil, ErrShipmentNotDelivered
	}

	return &SalesNote{
		id:            id,
		number:        Number(*s.DeliveredAt(), s.Code()),
		shipmentID:    s.ID(),
		shipmentCode:  s.Code(),
		warehouseID:   s.WarehouseID(),
		warehouseName: strings.TrimSpace(dest.WarehouseName),
		addressLine:   strings.TrimSpace(dest.AddressLine),
		totalQuantity: s.TotalQuantity(),
		totalWeight:   s.TotalWeight(),
		totalPrice:    s.TotalPrice(),
		issuedAt:      now,
	}, nil
}

// Snapshot carries the stored fields used by Restore.
type Snapshot struct {
	ID            kernel.UUID
	Number        string
	ShipmentID    kernel.UUID
	ShipmentCode  shipment.Code
	WarehouseID   kernel.UUID
	WarehouseName string
	AddressLine   string
	TotalQuantity decimal.Decimal
	TotalWeight   decimal.Decimal
	TotalPrice    decimal.Decimal
	IssuedAt      time.Time
}

// Restore rebuilds a note read from storage without recomputing anything.
func Restore(snap Snapshot) (*SalesNote, error) {
	if err := errors.Join(snap.ID.Validate(), snap.ShipmentID.Validate(), snap.WarehouseID.Validate()); err != nil {
		return nil, err
	}
	if snap.Number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	return &SalesNote{
		id:            snap.ID,
		number:        snap.Number,
		shipmentID:    snap.ShipmentID,
		shipmentCode:  snap.ShipmentCode,
		warehouseID:   snap.WarehouseID,
		warehouseName: snap.WarehouseName,
		addressLine:   snap.AddressLine,
		totalQuantity: snap.TotalQuantity,
		totalWeight:   snap.TotalWeight,
		totalPrice:    snap.TotalPrice,
		issuedAt:      snap.IssuedAt,
	}, nil
}

// ID returns the note identifier.
func (n *SalesNote) ID() kernel.UUID {
	return n.id
}

// Number returns the note number, see Number.
func (n *SalesNote) Number() string {
	return n.number
}

// ShipmentID returns the delivered shipment. Each shipment has at most one note.
func (n *SalesNote) ShipmentID() kernel.UUID {
	return n.shipmentID
}

// ShipmentCode returns the code captured at issue time.
func (n *SalesNote) ShipmentCode() shipment.Code {
	return n.shipmentCode
}

// WarehouseID returns the destination warehouse.
func (n *SalesNote) WarehouseID() kernel.UUID {
	return n.warehouseID
}

// WarehouseName returns the warehouse name captured at issue time.
func (n *SalesNote) WarehouseName() string {
	return n.warehouseName
}

// AddressLine returns "street, city" of the destination, or whatever part of it is known.
func (n *SalesNote) AddressLine() string {
	return n.addressLine
}

// TotalQuantity is copied from the shipment.
func (n *SalesNote) TotalQuantity() decimal.Decimal {
	return n.totalQuantity
}

// TotalWeight is copied from the shipment.
func (n *SalesNote) TotalWeight() decimal.Decimal {
	return n.totalWeight
}

// TotalPrice is copied from the shipment.
func (n *SalesNote) TotalPrice() decimal.Decimal {
	return n.totalPrice
}

// IssuedAt returns when the note was written, which may be later than the delivery.
func (n *SalesNote) IssuedAt() time.Time {
	return n.issuedAt
}

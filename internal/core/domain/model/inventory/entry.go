// Package inventory models stock received at a destination warehouse when a shipment is delivered.
package inventory

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// StatusAvailable is the only status set by this service.
const StatusAvailable = "available"

var ErrShipmentNotDelivered = errs.NewValueIsInvalidError("shipment must be delivered before receiving inventory")

// Entry is a quantity of one product received at a warehouse from one shipment line item.
type Entry struct {
	id          kernel.UUID
	warehouseID kernel.UUID
	shipmentID  kernel.UUID
	productID   kernel.UUID
	lineItemID  kernel.UUID
	quantity    decimal.Decimal
	totalWeight decimal.Decimal
	receivedAt  time.Time
	status      string
}

// EntriesFromDelivery creates one available entry per line item of a delivered shipment.
// newID is called once per entry.
func EntriesFromDelivery(s *shipment.Shipment, newID func() kernel.UUID) ([]*Entry, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Status() != shipment.Delivered || s.DeliveredAt() == nil {
		return nil, ErrShipmentNotDelivered
	}

	items := s.Items()
	entries := make([]*Entry, 0, len(items))
	for _, it := range items {
		e, err := RestoreEntry(
			newID(),
			s.WarehouseID(),
			s.ID(),
			it.ProductID(),
			it.ID(),
			it.Quantity(),
			it.TotalWeight(),
			*s.DeliveredAt(),
			StatusAvailable,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// RestoreEntry rebuilds an entry from its stored fields.
func RestoreEntry(
	id, warehouseID, shipmentID, productID, lineItemID kernel.UUID,
	quantity, totalWeight decimal.Decimal,
	receivedAt time.Time,
	status string,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		warehouseID.Validate(),
		shipmentID.Validate(),
		productID.Validate(),
		lineItemID.Validate(),
	); err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusAvailable
	}

	return &Entry{
		id:          id,
		warehouseID: warehouseID,
		shipmentID:  shipmentID,
		productID:   productID,
		lineItemID:  lineItemID,
		quantity:    quantity,
		totalWeight: totalWeight,
		receivedAt:  receivedAt,
		status:      status,
	}, nil
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) WarehouseID() kernel.UUID {
	return e.warehouseID
}

func (e *Entry) ShipmentID() kernel.UUID {
	return e.shipmentID
}

func (e *Entry) ProductID() kernel.UUID {
	return e.productID
}

func (e *Entry) LineItemID() kernel.UUID {
	return e.lineItemID
}

func (e *Entry) Quantity() decimal.Decimal {
	return e.quantity
}

func (e *Entry) TotalWeight() decimal.Decimal {
	return e.totalWeight
}

func (e *Entry) ReceivedAt() time.Time {
	return e.receivedAt
}

func (e *Entry) Status() string {
	return e.status
}

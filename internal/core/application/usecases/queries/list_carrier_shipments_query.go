package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListCarrierShipmentsQueryIsNotConstructed = errors.New(
	"ListCarrierShipmentsQuery must be created via NewListCarrierShipmentsQuery constructor",
)

// ListCarrierShipmentsQuery returns the work list of a carrier: every shipment assigned to it
// that was not cancelled. Delivered shipments come last; the rest are ordered by assignment
// time, newest first.
type ListCarrierShipmentsQuery struct {
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCarrierShipmentsQuery(carrierID kernel.UUID) (ListCarrierShipmentsQuery, error) {
	if err := carrierID.Validate(); err != nil {
		return ListCarrierShipmentsQuery{}, err
	}
	return ListCarrierShipmentsQuery{carrierID: carrierID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCarrierShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListCarrierShipmentsQueryIsNotConstructed)
}

// CarrierShipmentView is one row of the carrier work list.
type CarrierShipmentView struct {
	ID                  kernel.UUID
	Code                string
	Status              string
	WarehouseID         kernel.UUID
	TotalQuantity       decimal.Decimal
	TotalWeight         decimal.Decimal
	EstimatedDeliveryAt *time.Time
	VehicleID           kernel.UUID
	AssignedAt          time.Time
	AcceptedAt          *time.Time
}

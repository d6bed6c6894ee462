// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers read with plain SQL and return read models; they never load aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery or NewGetShipmentByCodeQuery constructor",
)

// GetShipmentQuery looks a shipment up either by id or by its human readable code.
//
// Example:
//
//	query, err := NewGetShipmentByCodeQuery("ENV-20261016-4F3A9C")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetShipmentQuery struct {
	shipmentID *kernel.UUID
	code       shipment.Code

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{shipmentID: &shipmentID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetShipmentByCodeQuery accepts the code in any letter case.
func NewGetShipmentByCodeQuery(code string) (GetShipmentQuery, error) {
	parsed, err := shipment.ParseCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{code: parsed, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentView is the full read model of one shipment.
type ShipmentView struct {
	ID                  kernel.UUID
	Code                string
	WarehouseID         kernel.UUID
	AddressID           *kernel.UUID
	Status              string
	TotalQuantity       decimal.Decimal
	TotalWeight         decimal.Decimal
	TotalPrice          decimal.Decimal
	Notes               string
	CreatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	TransitStartedAt    *time.Time
	DeliveredAt         *time.Time
	CancelledAt         *time.Time
	Items               []LineItemView
	Assignment          *AssignmentView
}

type LineItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	Quantity    decimal.Decimal
	UnitWeight  decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	TotalWeight decimal.Decimal
}

type AssignmentView struct {
	ID         kernel.UUID
	CarrierID  kernel.UUID
	VehicleID  kernel.UUID
	AssignedAt time.Time
	AcceptedAt *time.Time
}

package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetSalesNoteQueryIsNotConstructed = errors.New(
	"GetSalesNoteQuery must be created via NewGetSalesNoteQuery constructor",
)

// GetSalesNoteQuery reads the sales note issued for a delivered shipment.
type GetSalesNoteQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSalesNoteQuery(shipmentID kernel.UUID) (GetSalesNoteQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetSalesNoteQuery{}, err
	}
	return GetSalesNoteQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSalesNoteQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesNoteQueryIsNotConstructed)
}

type SalesNoteView struct {
	ID            kernel.UUID
	Number        string
	ShipmentID    kernel.UUID
	ShipmentCode  string
	WarehouseID   kernel.UUID
	WarehouseName string
	AddressLine   string
	TotalQuantity decimal.Decimal
	TotalWeight   decimal.Decimal
	TotalPrice    decimal.Decimal
	IssuedAt      time.Time
}

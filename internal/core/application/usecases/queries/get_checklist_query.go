package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetChecklistQueryIsNotConstructed = errors.New(
		"GetChecklistQuery must be created via NewGetChecklistQuery constructor",
	)
	ErrListShipmentChecklistsQueryIsNotConstructed = errors.New(
		"ListShipmentChecklistsQuery must be created via NewListShipmentChecklistsQuery constructor",
	)
)

type GetChecklistQuery struct {
	checklistID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetChecklistQuery(checklistID kernel.UUID) (GetChecklistQuery, error) {
	if err := checklistID.Validate(); err != nil {
		return GetChecklistQuery{}, err
	}
	return GetChecklistQuery{checklistID: checklistID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetChecklistQuery) Validate() error {
	return q.guard.Validate(ErrGetChecklistQueryIsNotConstructed)
}

// ListShipmentChecklistsQuery returns every inspection of a shipment, oldest first.
type ListShipmentChecklistsQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListShipmentChecklistsQuery(shipmentID kernel.UUID) (ListShipmentChecklistsQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return ListShipmentChecklistsQuery{}, err
	}
	return ListShipmentChecklistsQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentChecklistsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentChecklistsQueryIsNotConstructed)
}

type ChecklistView struct {
	ID                    kernel.UUID
	ShipmentID            kernel.UUID
	WarehouseID           kernel.UUID
	ProductsComplete      bool
	PackagingIntact       bool
	TemperatureAdequate   bool
	NoVisibleDamage       bool
	DocumentationComplete bool
	Condition             string
	ReviewerID            *kernel.UUID
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrSimulateTrackingCommandIsNotConstructed = errors.New(
	"SimulateTrackingCommand must be created via NewSimulateTrackingCommand constructor",
)

// SimulateTrackingCommand generates the tracking points of a shipment that started transit.
type SimulateTrackingCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSimulateTrackingCommand validates the shipment identifier.
func NewSimulateTrackingCommand(shipmentID kernel.UUID) (SimulateTrackingCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return SimulateTrackingCommand{}, err
	}

	return SimulateTrackingCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SimulateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrSimulateTrackingCommandIsNotConstructed)
}

func (c SimulateTrackingCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand marks an accepted shipment as departed from the plant.
type StartTransitCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTransitCommand validates the shipment identifier.
func NewStartTransitCommand(shipmentID kernel.UUID) (StartTransitCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return StartTransitCommand{}, err
	}

	return StartTransitCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

func (c StartTransitCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

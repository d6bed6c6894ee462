package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrDeliverShipmentCommandIsNotConstructed = errors.New(
	"DeliverShipmentCommand must be created via NewDeliverShipmentCommand constructor",
)

// DeliverShipmentCommand completes a shipment in transit and receives its contents at the destination warehouse.
type DeliverShipmentCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliverShipmentCommand validates the shipment identifier.
func NewDeliverShipmentCommand(shipmentID kernel.UUID) (DeliverShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return DeliverShipmentCommand{}, err
	}

	return DeliverShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeliverShipmentCommandIsNotConstructed)
}

func (c DeliverShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

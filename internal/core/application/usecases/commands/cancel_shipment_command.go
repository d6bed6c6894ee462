package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand terminates a shipment that is not yet delivered or cancelled.
// The reason is optional and only travels with the published event.
type CancelShipmentCommand struct {
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelShipmentCommand(shipmentID kernel.UUID, reason string) (CancelShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return CancelShipmentCommand{}, err
	}

	return CancelShipmentCommand{
		shipmentID: shipmentID,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CancelShipmentCommand) Reason() string {
	return c.reason
}

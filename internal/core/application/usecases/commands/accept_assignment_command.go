package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand confirms the carrier assignment of a shipment.
type AcceptAssignmentCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand validates the shipment identifier.
func NewAcceptAssignmentCommand(shipmentID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return AcceptAssignmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

func (c AcceptAssignmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

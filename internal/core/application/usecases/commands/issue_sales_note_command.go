package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrIssueSalesNoteCommandIsNotConstructed = errors.New(
	"IssueSalesNoteCommand must be created via NewIssueSalesNoteCommand constructor",
)

// IssueSalesNoteCommand issues the sales note of a delivered shipment.
type IssueSalesNoteCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueSalesNoteCommand validates the shipment identifier.
func NewIssueSalesNoteCommand(shipmentID kernel.UUID) (IssueSalesNoteCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return IssueSalesNoteCommand{}, err
	}

	return IssueSalesNoteCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueSalesNoteCommand) Validate() error {
	return c.guard.Validate(ErrIssueSalesNoteCommandIsNotConstructed)
}

func (c IssueSalesNoteCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

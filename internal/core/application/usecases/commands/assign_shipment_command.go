package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrAssignShipmentCommandIsNotConstructed = errors.New(
	"AssignShipmentCommand must be created via NewAssignShipmentCommand constructor",
)

// AssignShipmentCommand binds a pending shipment to a carrier and a vehicle.
//
// Example:
//
//	cmd, err := NewAssignShipmentCommand(shipmentID, carrierID, vehicleID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidStateTransition) {
//	    // the shipment was not pending
//	}
type AssignShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	carrierID  kernel.UUID
	vehicleID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignShipmentCommand(shipmentID, carrierID, vehicleID kernel.UUID) (AssignShipmentCommand, error) {
	cmd := AssignShipmentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCarrierID(carrierID),
		cmd.setVehicleID(vehicleID),
	); err != nil {
		return AssignShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipmentCommandIsNotConstructed)
}

func (c AssignShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AssignShipmentCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c AssignShipmentCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c *AssignShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *AssignShipmentCommand) setCarrierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrier_id", err)
	}
	c.carrierID = id
	return nil
}

func (c *AssignShipmentCommand) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicle_id", err)
	}
	c.vehicleID = id
	return nil
}

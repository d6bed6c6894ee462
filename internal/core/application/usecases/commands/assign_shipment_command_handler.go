package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// AssignShipmentCommandHandler creates the assignment and moves the shipment to assigned
// within one transaction. The shipment row is locked for the duration of the transaction.
//
// When vehicleExclusive is set, a vehicle already assigned to another shipment that is
// assigned, accepted or in transit is rejected with *errs.ConflictError.
type AssignShipmentCommandHandler struct {
	uowFactory       ShipmentUoWFactory
	events           eventSink
	vehicleExclusive bool
}

func NewAssignShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	log zerolog.Logger,
	vehicleExclusive bool,
) AssignShipmentCommandHandler {
	return AssignShipmentCommandHandler{
		uowFactory:       uowFactory,
		events:           newEventSink(publisher, log),
		vehicleExclusive: vehicleExclusive,
	}
}

// Handle checks that carrier and vehicle exist and are active before touching the shipment.
func (h AssignShipmentCommandHandler) Handle(ctx context.Context, cmd AssignShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	refs := uow.ReferenceRepository()
	shipments := uow.ShipmentRepository()

	if err := refs.EnsureCarrierActive(ctx, cmd.CarrierID()); err != nil {
		return err
	}
	if err := refs.EnsureVehicleActive(ctx, cmd.VehicleID()); err != nil {
		return err
	}

	s, err := shipments.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = s.Assign(kernel.NewUUID(), cmd.CarrierID(), cmd.VehicleID(), time.Now().UTC()); err != nil {
		return err
	}

	// The vehicle row is locked by EnsureVehicleActive, so this read cannot race another assignment.
	if h.vehicleExclusive {
		busy, busyErr := shipments.IsVehicleBusy(ctx, cmd.VehicleID(), cmd.ShipmentID())
		if busyErr != nil {
			return busyErr
		}
		if busy {
			return errs.NewConflictError("vehicle "+cmd.VehicleID().String(), "is assigned to another active shipment")
		}
	}

	if err = shipments.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.events.publish(ctx, s)
	return nil
}

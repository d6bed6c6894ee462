package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"

	"github.com/rs/zerolog"
)

// RejectAssignmentCommandHandler returns an assigned shipment to pending and deletes its
// assignment in the same transaction.
type RejectAssignmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	events     eventSink
	log        zerolog.Logger
}

func NewRejectAssignmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory: uowFactory,
		events:     newEventSink(publisher, log),
		log:        log,
	}
}

func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) error {
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

	shipments := uow.ShipmentRepository()

	s, err := shipments.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	removed, err := s.Reject(cmd.Reason(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = shipments.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.Info().
		Str("shipment_id", s.ID().String()).
		Str("carrier_id", removed.CarrierID().String()).
		Str("vehicle_id", removed.VehicleID().String()).
		Str("reason", cmd.Reason()).
		Msg("assignment rejected")
	h.events.publish(ctx, s)
	return nil
}

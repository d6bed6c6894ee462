package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"

	"github.com/rs/zerolog"
)

// CancelShipmentCommandHandler cancels a shipment. Tracking simulations already running for
// it are not interrupted; their points stay as history.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	events     eventSink
}

func NewCancelShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		events:     newEventSink(publisher, log),
	}
}

func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	if err = s.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return err
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

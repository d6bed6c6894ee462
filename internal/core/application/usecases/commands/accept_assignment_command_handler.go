package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"

	"github.com/rs/zerolog"
)

// AcceptAssignmentCommandHandler moves an assigned shipment to accepted and stamps the
// acceptance time on its assignment.
//
// Example:
//
//	already, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if already {
//	    // nothing changed, the shipment had been accepted before
//	}
type AcceptAssignmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	events     eventSink
}

func NewAcceptAssignmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		events:     newEventSink(publisher, log),
	}
}

// Handle reports alreadyAccepted=true, without writing, when the shipment is already accepted.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()

	s, err := shipments.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return false, err
	}

	alreadyAccepted, err := s.Accept(time.Now().UTC())
	if err != nil {
		return false, err
	}
	if alreadyAccepted {
		return true, nil
	}

	if err = shipments.Update(ctx, s); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.events.publish(ctx, s)
	return false, nil
}

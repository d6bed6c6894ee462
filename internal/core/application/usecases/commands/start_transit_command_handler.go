package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"

	"github.com/rs/zerolog"
)

// StartTransitCommandHandler commits the accepted -> in_transit transition on its own and then
// schedules the tracking simulation. Scheduling is best effort: a dropped task is picked up by
// the retry job, and a failed simulation never reverts the transition.
type StartTransitCommandHandler struct {
	uowFactory ShipmentUoWFactory
	scheduler  TrackingScheduler
	events     eventSink
	log        zerolog.Logger
}

func NewStartTransitCommandHandler(
	uowFactory ShipmentUoWFactory,
	scheduler TrackingScheduler,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		events:     newEventSink(publisher, log),
		log:        log,
	}
}

func (h StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
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

	if err = s.StartTransit(time.Now().UTC()); err != nil {
		return err
	}

	if err = shipments.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.events.publish(ctx, s)

	if h.scheduler != nil && !h.scheduler.Schedule(s.ID()) {
		h.log.Warn().Str("shipment_id", s.ID().String()).Msg("tracking queue full, left to retry job")
	}
	return nil
}

package commands

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// eventSink publishes the events recorded by an aggregate. Publish failures are logged and
// never returned: the transition they describe is already committed.
type eventSink struct {
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func newEventSink(publisher ports.EventPublisher, log zerolog.Logger) eventSink {
	return eventSink{publisher: publisher, log: log}
}

func (e eventSink) publish(ctx context.Context, s *shipment.Shipment) {
	events := s.Events()
	if len(events) == 0 || e.publisher == nil {
		return
	}

	if err := e.publisher.Publish(ctx, events...); err != nil {
		e.log.Warn().
			Err(errs.NewDependencyUnavailableError("event publisher", err)).
			Str("shipment_id", s.ID().String()).
			Str("status", s.Status().String()).
			Msg("status change not published")
	}
}

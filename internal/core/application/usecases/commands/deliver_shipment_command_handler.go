package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/inventory"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"github.com/rs/zerolog"
)

// SalesNoteIssuer issues the sales note of a delivered shipment in its own transaction.
type SalesNoteIssuer interface {
	Handle(ctx context.Context, cmd IssueSalesNoteCommand) error
}

// DeliverShipmentCommandHandler completes a shipment in transit.
//
// The delivered transition and one inventory entry per line item are written in a single
// transaction: if any entry fails the shipment stays in transit. The sales note is issued
// after commit; a failure there is logged and left to the retry job.
type DeliverShipmentCommandHandler struct {
	uowFactory DeliveryUoWFactory
	issuer     SalesNoteIssuer
	events     eventSink
	log        zerolog.Logger
}

func NewDeliverShipmentCommandHandler(
	uowFactory DeliveryUoWFactory,
	issuer SalesNoteIssuer,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) DeliverShipmentCommandHandler {
	return DeliverShipmentCommandHandler{
		uowFactory: uowFactory,
		issuer:     issuer,
		events:     newEventSink(publisher, log),
		log:        log,
	}
}

func (h DeliverShipmentCommandHandler) Handle(ctx context.Context, cmd DeliverShipmentCommand) error {
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

	if err = s.Deliver(time.Now().UTC()); err != nil {
		return err
	}

	entries, err := inventory.EntriesFromDelivery(s, kernel.NewUUID)
	if err != nil {
		return err
	}

	if err = shipments.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.InventoryRepository().AddAll(ctx, entries); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.Info().
		Str("shipment_id", s.ID().String()).
		Int("inventory_entries", len(entries)).
		Msg("shipment delivered")
	h.events.publish(ctx, s)

	if h.issuer == nil {
		return nil
	}
	issue, err := NewIssueSalesNoteCommand(s.ID())
	if err != nil {
		return err
	}
	if err = h.issuer.Handle(ctx, issue); err != nil {
		h.log.Error().Err(err).Str("shipment_id", s.ID().String()).Msg("sales note not issued, left to retry job")
	}
	return nil
}

package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// maxCodeAttempts bounds retries after a shipment code collision.
const maxCodeAttempts = 3

// CreateShipmentCommandHandler creates pending shipments.
// The destination warehouse must exist; a generated code that collides with an existing one is
// regenerated up to maxCodeAttempts times before the conflict is reported.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	log        zerolog.Logger
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory, log zerolog.Logger) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		log:        log,
	}
}

// Handle validates the line items, then persists the shipment in its own transaction.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items, err := buildLineItems(cmd.Items())
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err = h.create(ctx, cmd, items)
		if err == nil || !errors.Is(err, errs.ErrConflict) || attempt == maxCodeAttempts {
			return err
		}
		h.log.Warn().Err(err).Int("attempt", attempt).Msg("shipment code collision, regenerating")
	}
}

func (h CreateShipmentCommandHandler) create(ctx context.Context, cmd CreateShipmentCommand, items []*shipment.LineItem) error {
	now := time.Now().UTC()

	s, err := shipment.NewShipment(
		cmd.ShipmentID(),
		shipment.NewCode(now, kernel.NewUUID()),
		cmd.WarehouseID(),
		cmd.AddressID(),
		items,
		cmd.Notes(),
		cmd.EstimatedDeliveryAt(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.ReferenceRepository().GetWarehouse(ctx, cmd.WarehouseID()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.Info().
		Str("shipment_id", s.ID().String()).
		Str("code", s.Code().String()).
		Int("items", len(items)).
		Msg("shipment created")
	return nil
}

func buildLineItems(inputs []LineItemInput) ([]*shipment.LineItem, error) {
	items := make([]*shipment.LineItem, 0, len(inputs))
	var problems []error
	for _, in := range inputs {
		item, err := shipment.NewLineItem(kernel.NewUUID(), in.ProductID, in.Quantity, in.UnitWeight, in.UnitPrice)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}

package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/salesnote"
	"shipping/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// IssueSalesNoteCommandHandler snapshots a delivered shipment into its sales note.
// At most one note exists per shipment; issuing again is a no-op.
type IssueSalesNoteCommandHandler struct {
	uowFactory SalesNoteUoWFactory
	log        zerolog.Logger
}

func NewIssueSalesNoteCommandHandler(uowFactory SalesNoteUoWFactory, log zerolog.Logger) IssueSalesNoteCommandHandler {
	return IssueSalesNoteCommandHandler{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (h IssueSalesNoteCommandHandler) Handle(ctx context.Context, cmd IssueSalesNoteCommand) error {
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

	notes := uow.SalesNoteRepository()

	_, err := notes.GetByShipment(ctx, cmd.ShipmentID())
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	warehouse, err := uow.ReferenceRepository().GetWarehouse(ctx, s.WarehouseID())
	if err != nil {
		return err
	}

	note, err := salesnote.Issue(kernel.NewUUID(), s, salesnote.Destination{
		WarehouseName: warehouse.Name,
		AddressLine:   warehouse.AddressLine,
	}, time.Now().UTC())
	if err != nil {
		return err
	}

	err = notes.Add(ctx, note)
	if errors.Is(err, salesnote.ErrAlreadyIssued) {
		// issued concurrently by the retry job
		return nil
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.Info().
		Str("shipment_id", s.ID().String()).
		Str("number", note.Number()).
		Str("total_price", note.TotalPrice().String()).
		Msg("sales note issued")
	return nil
}

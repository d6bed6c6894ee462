package commands

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TrackingRunner runs one tracking simulation.
type TrackingRunner interface {
	Handle(ctx context.Context, cmd SimulateTrackingCommand) error
}

// ResumeSideEffectsCommandHandler finds shipments whose post-commit work is missing and redoes
// it with at most concurrency simulations or issues in flight. Individual failures are logged
// and retried on the next run; only listing failures are returned.
type ResumeSideEffectsCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	tracker     TrackingRunner
	issuer      SalesNoteIssuer
	concurrency int
	batchSize   int
	log         zerolog.Logger
}

func NewResumeSideEffectsCommandHandler(
	uowFactory ShipmentUoWFactory,
	tracker TrackingRunner,
	issuer SalesNoteIssuer,
	concurrency int,
	batchSize int,
	log zerolog.Logger,
) ResumeSideEffectsCommandHandler {
	if concurrency < 1 {
		concurrency = 1
	}
	if batchSize < 1 {
		batchSize = 100
	}
	return ResumeSideEffectsCommandHandler{
		uowFactory:  uowFactory,
		tracker:     tracker,
		issuer:      issuer,
		concurrency: concurrency,
		batchSize:   batchSize,
		log:         log,
	}
}

func (h ResumeSideEffectsCommandHandler) Handle(ctx context.Context, cmd ResumeSideEffectsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Reads only, outside a transaction.
	shipments := h.uowFactory.Create().ShipmentRepository()

	untracked, err := shipments.ListInTransitWithoutTracking(ctx, h.batchSize)
	if err != nil {
		return err
	}
	unbilled, err := shipments.ListDeliveredWithoutSalesNote(ctx, h.batchSize)
	if err != nil {
		return err
	}
	if len(untracked) == 0 && len(unbilled) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(h.concurrency)

	for _, id := range untracked {
		g.Go(func() error {
			h.run(id, "tracking", func() error {
				sim, simErr := NewSimulateTrackingCommand(id)
				if simErr != nil {
					return simErr
				}
				return h.tracker.Handle(ctx, sim)
			})
			return nil
		})
	}

	for _, id := range unbilled {
		g.Go(func() error {
			h.run(id, "sales_note", func() error {
				issue, issueErr := NewIssueSalesNoteCommand(id)
				if issueErr != nil {
					return issueErr
				}
				return h.issuer.Handle(ctx, issue)
			})
			return nil
		})
	}

	_ = g.Wait()

	h.log.Info().
		Int("tracking", len(untracked)).
		Int("sales_notes", len(unbilled)).
		Msg("side effects resumed")
	return nil
}

func (h ResumeSideEffectsCommandHandler) run(id kernel.UUID, kind string, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
		h.log.Warn().Err(err).Str("shipment_id", id.String()).Str("kind", kind).Msg("resume failed")
	}
}

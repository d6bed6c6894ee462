package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// SimulateTrackingCommandHandler writes the simulated route of a shipment from the plant to its
// destination warehouse.
//
// Business rules:
//   - the shipment must have started transit; it may have been delivered or cancelled since
//   - a shipment that already has points is left untouched, so reruns are safe
//   - a destination without coordinates falls back to the configured default location
//
// Storage failures are returned as *errs.DependencyUnavailableError.
type SimulateTrackingCommandHandler struct {
	uowFactory TrackingUoWFactory
	simulator  services.RouteSimulator
	plant      kernel.GeoPoint
	fallback   kernel.GeoPoint
	log        zerolog.Logger
}

func NewSimulateTrackingCommandHandler(
	uowFactory TrackingUoWFactory,
	simulator services.RouteSimulator,
	plant kernel.GeoPoint,
	fallback kernel.GeoPoint,
	log zerolog.Logger,
) SimulateTrackingCommandHandler {
	return SimulateTrackingCommandHandler{
		uowFactory: uowFactory,
		simulator:  simulator,
		plant:      plant,
		fallback:   fallback,
		log:        log,
	}
}

func (h SimulateTrackingCommandHandler) Handle(ctx context.Context, cmd SimulateTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewDependencyUnavailableError("tracking store", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if s.TransitStartedAt() == nil {
		return errs.NewInvalidStateTransitionError(s.Status().String(), "tracking")
	}

	tracks := uow.TrackingRepository()
	has, err := tracks.HasPoints(ctx, s.ID())
	if err != nil {
		return errs.NewDependencyUnavailableError("tracking store", err)
	}
	if has {
		return nil
	}

	warehouse, err := uow.ReferenceRepository().GetWarehouse(ctx, s.WarehouseID())
	if err != nil {
		return err
	}

	destination := h.fallback
	if warehouse.Location != nil {
		destination = *warehouse.Location
	} else {
		h.log.Info().
			Str("shipment_id", s.ID().String()).
			Str("warehouse_id", warehouse.ID.String()).
			Msg("warehouse has no coordinates, using default destination")
	}

	points, err := h.simulator.Simulate(s.ID(), h.plant, destination, time.Now().UTC(), kernel.NewUUID)
	if err != nil {
		return err
	}

	if err = tracks.AddAll(ctx, points); err != nil {
		return errs.NewDependencyUnavailableError("tracking store", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewDependencyUnavailableError("tracking store", err)
	}

	h.log.Debug().Str("shipment_id", s.ID().String()).Int("points", len(points)).Msg("tracking simulated")
	return nil
}

package commands_test

import (
	"context"
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	plant    = mustGeoPoint(-17.7833, -63.1821)
	fallback = mustGeoPoint(-17.8000, -63.1500)
)

func mustGeoPoint(lat, lon float64) kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return p
}

func assertAt(t *testing.T, want kernel.GeoPoint, got kernel.GeoPoint) {
	t.Helper()
	assert.InDelta(t, want.Latitude(), got.Latitude(), 1e-9)
	assert.InDelta(t, want.Longitude(), got.Longitude(), 1e-9)
}

type trackingMocks struct {
	shipments *MockShipmentRepository
	tracks    *MockTrackingRepository
	refs      *MockReferenceRepository
	uow       *MockUoW
	factory   *MockTrackingUoWFactory
}

func newTrackingMocks(ctx context.Context) trackingMocks {
	m := trackingMocks{
		shipments: new(MockShipmentRepository),
		tracks:    new(MockTrackingRepository),
		refs:      new(MockReferenceRepository),
		uow:       new(MockUoW),
		factory:   new(MockTrackingUoWFactory),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.uow.On("ShipmentRepository").Return(m.shipments).Maybe()
	m.uow.On("TrackingRepository").Return(m.tracks).Maybe()
	m.uow.On("ReferenceRepository").Return(m.refs).Maybe()
	return m
}

func newSimulateHandler(t *testing.T, factory commands.TrackingUoWFactory) commands.SimulateTrackingCommandHandler {
	t.Helper()
	sim, err := services.NewRouteSimulator(services.DefaultPoints, services.DefaultMinSpeed, services.DefaultMaxSpeed, nil)
	require.NoError(t, err)
	return commands.NewSimulateTrackingCommandHandler(factory, sim, plant, fallback, zerolog.Nop())
}

func TestSimulateTrackingCommandHandler_Handle_WritesRoute(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.InTransit)
	cmd, err := commands.NewSimulateTrackingCommand(s.ID())
	require.NoError(t, err)

	destination := mustGeoPoint(-17.3935, -66.1570)
	m := newTrackingMocks(ctx)
	var written []*tracking.Point
	m.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
	m.tracks.On("HasPoints", ctx, s.ID()).Return(false, nil).Once()
	m.refs.On("GetWarehouse", ctx, s.WarehouseID()).
		Return(ports.Warehouse{ID: s.WarehouseID(), Name: "Cochabamba", Location: &destination}, nil).Once()
	m.tracks.On("AddAll", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]*tracking.Point) }).
		Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()

	err = newSimulateHandler(t, m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, written, services.DefaultPoints)
	assertAt(t, plant, written[0].Position())
	assertAt(t, destination, written[len(written)-1].Position())
	for i, p := range written {
		assert.True(t, p.ShipmentID().IsEqual(s.ID()))
		assert.GreaterOrEqual(t, p.Speed(), services.DefaultMinSpeed)
		assert.LessOrEqual(t, p.Speed(), services.DefaultMaxSpeed)
		if i > 0 {
			assert.True(t, p.CapturedAt().After(written[i-1].CapturedAt()))
		}
	}
	m.uow.AssertExpectations(t)
	m.tracks.AssertExpectations(t)
}

func TestSimulateTrackingCommandHandler_Handle_FallbackDestination(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.InTransit)
	cmd, err := commands.NewSimulateTrackingCommand(s.ID())
	require.NoError(t, err)

	m := newTrackingMocks(ctx)
	var written []*tracking.Point
	m.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
	m.tracks.On("HasPoints", ctx, s.ID()).Return(false, nil).Once()
	m.refs.On("GetWarehouse", ctx, s.WarehouseID()).Return(ports.Warehouse{ID: s.WarehouseID()}, nil).Once()
	m.tracks.On("AddAll", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]*tracking.Point) }).
		Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()

	err = newSimulateHandler(t, m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotEmpty(t, written)
	assertAt(t, fallback, written[len(written)-1].Position())
}

func TestSimulateTrackingCommandHandler_Handle_SkipsWhenPointsExist(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.InTransit)
	cmd, err := commands.NewSimulateTrackingCommand(s.ID())
	require.NoError(t, err)

	m := newTrackingMocks(ctx)
	m.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
	m.tracks.On("HasPoints", ctx, s.ID()).Return(true, nil).Once()

	err = newSimulateHandler(t, m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	m.tracks.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSimulateTrackingCommandHandler_Handle_StoreFailure(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.InTransit)
	cmd, err := commands.NewSimulateTrackingCommand(s.ID())
	require.NoError(t, err)

	m := newTrackingMocks(ctx)
	m.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
	m.tracks.On("HasPoints", ctx, s.ID()).Return(false, nil).Once()
	m.refs.On("GetWarehouse", ctx, s.WarehouseID()).Return(ports.Warehouse{ID: s.WarehouseID()}, nil).Once()
	m.tracks.On("AddAll", ctx, mock.Anything).Return(errors.New("relation does not exist")).Once()

	err = newSimulateHandler(t, m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDependencyUnavailable)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSimulateTrackingCommandHandler_Handle_TransitNotStarted(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.Accepted)
	cmd, err := commands.NewSimulateTrackingCommand(s.ID())
	require.NoError(t, err)

	m := newTrackingMocks(ctx)
	m.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()

	err = newSimulateHandler(t, m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	m.tracks.AssertNotCalled(t, "HasPoints", mock.Anything, mock.Anything)
}

func TestResumeSideEffectsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewResumeSideEffectsCommand()

	untracked := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	unbilled := []kernel.UUID{kernel.NewUUID()}

	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	factory := new(MockShipmentUoWFactory)
	tracker := new(MockTracker)
	issuer := new(MockIssuer)

	factory.On("Create").Return(uow).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	shipments.On("ListInTransitWithoutTracking", ctx, 50).Return(untracked, nil).Once()
	shipments.On("ListDeliveredWithoutSalesNote", ctx, 50).Return(unbilled, nil).Once()
	for i, id := range untracked {
		var ret error
		if i == 1 {
			ret = errs.NewDependencyUnavailableError("tracking store", errors.New("timeout"))
		}
		tracker.On("Handle", ctx, mock.MatchedBy(func(c commands.SimulateTrackingCommand) bool {
			return c.ShipmentID().IsEqual(id)
		})).Return(ret).Once()
	}
	issuer.On("Handle", ctx, mock.MatchedBy(func(c commands.IssueSalesNoteCommand) bool {
		return c.ShipmentID().IsEqual(unbilled[0])
	})).Return(nil).Once()

	handler := commands.NewResumeSideEffectsCommandHandler(factory, tracker, issuer, 2, 50, zerolog.Nop())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	tracker.AssertExpectations(t)
	issuer.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestResumeSideEffectsCommandHandler_Handle_ListFailure(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewResumeSideEffectsCommand()

	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	factory := new(MockShipmentUoWFactory)
	tracker := new(MockTracker)

	factory.On("Create").Return(uow).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	shipments.On("ListInTransitWithoutTracking", ctx, 100).Return(nil, errors.New("connection refused")).Once()

	handler := commands.NewResumeSideEffectsCommandHandler(factory, tracker, nil, 4, 0, zerolog.Nop())
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "connection refused")
	tracker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

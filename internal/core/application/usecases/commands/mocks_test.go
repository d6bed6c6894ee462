package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/inventory"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/salesnote"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) IsVehicleBusy(ctx context.Context, vehicleID, exceptID kernel.UUID) (bool, error) {
	args := m.Called(ctx, vehicleID, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) ListInTransitWithoutTracking(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockShipmentRepository) ListDeliveredWithoutSalesNote(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) GetWarehouse(ctx context.Context, id kernel.UUID) (ports.Warehouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Warehouse), args.Error(1)
}

func (m *MockReferenceRepository) EnsureCarrierActive(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReferenceRepository) EnsureVehicleActive(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) AddAll(ctx context.Context, points []*tracking.Point) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *MockTrackingRepository) HasPoints(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	args := m.Called(ctx, shipmentID)
	return args.Bool(0), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) AddAll(ctx context.Context, entries []*inventory.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

type MockSalesNoteRepository struct{ mock.Mock }

func (m *MockSalesNoteRepository) Add(ctx context.Context, note *salesnote.SalesNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockSalesNoteRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*salesnote.SalesNote, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesnote.SalesNote), args.Error(1)
}

type MockChecklistRepository struct{ mock.Mock }

func (m *MockChecklistRepository) Add(ctx context.Context, c *checklist.Checklist) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChecklistRepository) Update(ctx context.Context, c *checklist.Checklist) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChecklistRepository) Get(ctx context.Context, id kernel.UUID) (*checklist.Checklist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checklist.Checklist), args.Error(1)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) ReferenceRepository() ports.ReferenceRepository {
	args := m.Called()
	return args.Get(0).(ports.ReferenceRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) SalesNoteRepository() ports.SalesNoteRepository {
	args := m.Called()
	return args.Get(0).(ports.SalesNoteRepository)
}

func (m *MockUoW) ChecklistRepository() ports.ChecklistRepository {
	args := m.Called()
	return args.Get(0).(ports.ChecklistRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockSalesNoteUoWFactory struct{ mock.Mock }

func (m *MockSalesNoteUoWFactory) Create() commands.SalesNoteUoW {
	args := m.Called()
	return args.Get(0).(commands.SalesNoteUoW)
}

type MockChecklistUoWFactory struct{ mock.Mock }

func (m *MockChecklistUoWFactory) Create() commands.ChecklistUoW {
	args := m.Called()
	return args.Get(0).(commands.ChecklistUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...shipment.StatusChanged) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Schedule(shipmentID kernel.UUID) bool {
	args := m.Called(shipmentID)
	return args.Bool(0)
}

type MockIssuer struct{ mock.Mock }

func (m *MockIssuer) Handle(ctx context.Context, cmd commands.IssueSalesNoteCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockTracker struct{ mock.Mock }

func (m *MockTracker) Handle(ctx context.Context, cmd commands.SimulateTrackingCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// shipmentIn builds a shipment with two line items (10 @ 5 and 5 @ 8) driven to the given status.
func shipmentIn(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()
	now := time.Now().UTC()

	first, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(10), decimal.NewFromInt(2), decimal.NewFromInt(5))
	require.NoError(t, err)
	second, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(5), decimal.NewFromInt(1), decimal.NewFromInt(8))
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), shipment.NewCode(now, kernel.NewUUID()), kernel.NewUUID(),
		nil, []*shipment.LineItem{first, second}, "", nil, now)
	require.NoError(t, err)

	path := []func() error{
		func() error { return s.Assign(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now) },
		func() error { _, e := s.Accept(now); return e },
		func() error { return s.StartTransit(now) },
		func() error { return s.Deliver(now) },
	}
	steps := map[shipment.Status]int{
		shipment.Pending:   0,
		shipment.Assigned:  1,
		shipment.Accepted:  2,
		shipment.InTransit: 3,
		shipment.Delivered: 4,
	}
	n, ok := steps[status]
	if !ok {
		require.NoError(t, s.Cancel("", now))
		return reload(t, s)
	}
	for _, step := range path[:n] {
		require.NoError(t, step())
	}
	return reload(t, s)
}

// reload drops recorded events, as a repository read would.
func reload(t *testing.T, s *shipment.Shipment) *shipment.Shipment {
	t.Helper()
	restored, err := shipment.Restore(shipment.Snapshot{
		ID:                  s.ID(),
		Code:                s.Code(),
		WarehouseID:         s.WarehouseID(),
		AddressID:           s.AddressID(),
		Status:              s.Status(),
		Items:               s.Items(),
		Assignment:          s.Assignment(),
		Notes:               s.Notes(),
		CreatedAt:           s.CreatedAt(),
		EstimatedDeliveryAt: s.EstimatedDeliveryAt(),
		TransitStartedAt:    s.TransitStartedAt(),
		DeliveredAt:         s.DeliveredAt(),
		CancelledAt:         s.CancelledAt(),
		Version:             1,
	})
	require.NoError(t, err)
	return restored
}

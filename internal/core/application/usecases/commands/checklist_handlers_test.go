package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checklistMocks struct {
	shipments  *MockShipmentRepository
	checklists *MockChecklistRepository
	refs       *MockReferenceRepository
	uow        *MockUoW
	factory    *MockChecklistUoWFactory
}

func newChecklistMocks(ctx context.Context) checklistMocks {
	m := checklistMocks{
		shipments:  new(MockShipmentRepository),
		checklists: new(MockChecklistRepository),
		refs:       new(MockReferenceRepository),
		uow:        new(MockUoW),
		factory:    new(MockChecklistUoWFactory),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback", ctx).Return(nil)
	m.uow.On("ShipmentRepository").Return(m.shipments).Maybe()
	m.uow.On("ChecklistRepository").Return(m.checklists).Maybe()
	m.uow.On("ReferenceRepository").Return(m.refs).Maybe()
	return m
}

func TestCreateChecklistCommandHandler_Handle_DefaultsToDestination(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.InTransit)
	flags := checklist.Flags{ProductsComplete: true, PackagingIntact: true}
	cmd, err := commands.NewCreateChecklistCommand(kernel.NewUUID(), s.ID(), nil, flags, "good", nil, " dented box ")
	require.NoError(t, err)

	m := newChecklistMocks(ctx)
	var stored *checklist.Checklist
	m.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	m.checklists.On("Add", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*checklist.Checklist) }).
		Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()

	err = commands.NewCreateChecklistCommandHandler(m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ID().IsEqual(cmd.ChecklistID()))
	assert.True(t, stored.WarehouseID().IsEqual(s.WarehouseID()))
	assert.Equal(t, flags, stored.Flags())
	assert.Equal(t, checklist.Good, stored.Condition())
	assert.Equal(t, "dented box", stored.Notes())
	m.refs.AssertNotCalled(t, "GetWarehouse", mock.Anything, mock.Anything)
	m.uow.AssertExpectations(t)
}

func TestCreateChecklistCommandHandler_Handle_ExplicitWarehouse(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.Delivered)
	other := kernel.NewUUID()
	cmd, err := commands.NewCreateChecklistCommand(kernel.NewUUID(), s.ID(), &other, checklist.Flags{}, "poor", nil, "")
	require.NoError(t, err)

	m := newChecklistMocks(ctx)
	var stored *checklist.Checklist
	m.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	m.refs.On("GetWarehouse", ctx, other).Return(ports.Warehouse{ID: other}, nil).Once()
	m.checklists.On("Add", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*checklist.Checklist) }).
		Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()

	err = commands.NewCreateChecklistCommandHandler(m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, stored.WarehouseID().IsEqual(other))
}

func TestCreateChecklistCommandHandler_Handle_UnknownWarehouse(t *testing.T) {
	ctx := t.Context()
	s := shipmentIn(t, shipment.Pending)
	other := kernel.NewUUID()
	cmd, err := commands.NewCreateChecklistCommand(kernel.NewUUID(), s.ID(), &other, checklist.Flags{}, "fair", nil, "")
	require.NoError(t, err)

	m := newChecklistMocks(ctx)
	m.shipments.On("Get", ctx, s.ID()).Return(s, nil).Once()
	m.refs.On("GetWarehouse", ctx, other).Return(ports.Warehouse{}, errs.NewObjectNotFoundError("warehouse", other)).Once()

	err = commands.NewCreateChecklistCommandHandler(m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	m.checklists.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateChecklistCommandHandler_Handle_UnknownShipment(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateChecklistCommand(kernel.NewUUID(), id, nil, checklist.Flags{}, "excellent", nil, "")
	require.NoError(t, err)

	m := newChecklistMocks(ctx)
	m.shipments.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("shipment", id)).Once()

	err = commands.NewCreateChecklistCommandHandler(m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateChecklistCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	created := time.Now().UTC().Add(-time.Hour)
	flags := checklist.Flags{ProductsComplete: true, PackagingIntact: true, NoVisibleDamage: true}
	c, err := checklist.Restore(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), flags, checklist.Good, nil,
		"initial", created, created)
	require.NoError(t, err)

	damaged := false
	poor := checklist.Poor
	cmd, err := commands.NewUpdateChecklistCommand(c.ID(), checklist.Patch{NoVisibleDamage: &damaged, Condition: &poor})
	require.NoError(t, err)

	m := newChecklistMocks(ctx)
	m.checklists.On("Get", ctx, c.ID()).Return(c, nil).Once()
	m.checklists.On("Update", ctx, c).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()

	err = commands.NewUpdateChecklistCommandHandler(m.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, c.Flags().NoVisibleDamage)
	assert.True(t, c.Flags().ProductsComplete)
	assert.True(t, c.Flags().PackagingIntact)
	assert.Equal(t, checklist.Poor, c.Condition())
	assert.Equal(t, "initial", c.Notes())
	assert.True(t, c.UpdatedAt().After(created))
	assert.Equal(t, created, c.CreatedAt())
	m.uow.AssertExpectations(t)
}

func TestUpdateChecklistCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	notes := "recounted"
	cmd, err := commands.NewUpdateChecklistCommand(id, checklist.Patch{Notes: &notes})
	require.NoError(t, err)

	m := newChecklistMocks(ctx)
	m.checklists.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("checklist", id)).Once()

	err = commands.NewUpdateChecklistCommandHandler(m.factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

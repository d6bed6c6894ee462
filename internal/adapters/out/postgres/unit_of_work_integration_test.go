package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/pgtest"
	"shipping/internal/core/domain/model/inventory"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises transaction boundaries of the GORM unit of work
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	pgtest.Suite
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	suite.Suite.SetupSuite()
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ShipmentRepository())
	suite.NotNil(uow1.TrackingRepository())
	suite.NotNil(uow1.InventoryRepository())
	suite.NotNil(uow1.SalesNoteRepository())
	suite.NotNil(uow1.ChecklistRepository())
	suite.NotNil(uow1.ReferenceRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	warehouseID := suite.SeedWarehouse("Central", "Av. Cristo Redentor 100", "Santa Cruz", nil)
	s := suite.NewShipment(warehouseID)
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(ctx, s))
	s = suite.driveToInTransit(s)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.ShipmentRepository().GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Deliver(time.Now().UTC()))
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, locked))

	entries, err := inventory.EntriesFromDelivery(locked, kernel.NewUUID)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InventoryRepository().AddAll(ctx, entries))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Delivered, stored.Status())
	suite.Equal(int64(2), suite.Count("inventory_entries", "shipment_id = ?", s.ID().Bytes()))
}

// A failing inventory insert must leave the shipment in transit with no entries.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsDelivery() {
	ctx := context.Background()
	warehouseID := suite.SeedWarehouse("Central", "Av. Cristo Redentor 100", "Santa Cruz", nil)
	s := suite.NewShipment(warehouseID)
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(ctx, s))
	s = suite.driveToInTransit(s)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.ShipmentRepository().GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Deliver(time.Now().UTC()))
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, locked))

	entries, err := inventory.EntriesFromDelivery(locked, kernel.NewUUID)
	suite.Require().NoError(err)
	// Same line item twice violates the unique line_item_id.
	err = uow.InventoryRepository().AddAll(ctx, append(entries, entries[0]))
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().NoError(uow.Rollback(ctx))

	stored, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, stored.Status())
	suite.Nil(stored.DeliveredAt())
	suite.Equal(int64(0), suite.Count("inventory_entries", "shipment_id = ?", s.ID().Bytes()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	warehouseID := suite.SeedWarehouse("Central", "", "", nil)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	first := suite.NewShipment(warehouseID)
	second := suite.NewShipment(warehouseID)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.ShipmentRepository().Add(ctx, first))
	suite.Require().NoError(uow2.ShipmentRepository().Add(ctx, second))

	_, err := uow1.ShipmentRepository().Get(ctx, second.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "UOW1 should not see the second shipment")
	_, err = uow2.ShipmentRepository().Get(ctx, first.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "UOW2 should not see the first shipment")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create().ShipmentRepository()
	_, err = reader.Get(ctx, first.ID())
	suite.Require().NoError(err)
	_, err = reader.Get(ctx, second.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) driveToInTransit(s *shipment.Shipment) *shipment.Shipment {
	ctx := context.Background()
	repo := suite.factory.Create().ShipmentRepository()
	now := time.Now().UTC()

	steps := []func(*shipment.Shipment) error{
		func(x *shipment.Shipment) error { return x.Assign(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now) },
		func(x *shipment.Shipment) error { _, err := x.Accept(now); return err },
		func(x *shipment.Shipment) error { return x.StartTransit(now) },
	}
	for _, step := range steps {
		current, err := repo.Get(ctx, s.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(step(current))
		suite.Require().NoError(repo.Update(ctx, current))
	}

	current, err := repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	return current
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/pgtest"
	"shipping/internal/adapters/out/postgres/trackingrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/salesnote"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	pgtest.Suite
	factory ports.UnitOfWorkFactory
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	suite.Suite.SetupSuite()
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.DB)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_ByIDAndCode() {
	ctx := context.Background()
	warehouseID := suite.SeedWarehouse("Central", "Av. Banzer 300", "Santa Cruz", nil)
	s := suite.NewShipment(warehouseID)
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(ctx, s))

	handler := queries.NewGetShipmentQueryHandler(suite.DB)

	byID, err := queries.NewGetShipmentQuery(s.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, byID)
	suite.Require().NoError(err)

	suite.Equal(s.Code().String(), view.Code)
	suite.Equal(shipment.Pending.String(), view.Status)
	suite.True(decimal.NewFromInt(15).Equal(view.TotalQuantity))
	suite.True(decimal.NewFromInt(25).Equal(view.TotalWeight))
	suite.True(decimal.NewFromInt(90).Equal(view.TotalPrice))
	suite.Require().Len(view.Items, 2)
	suite.True(decimal.NewFromInt(10).Equal(view.Items[0].Quantity))
	suite.True(decimal.NewFromInt(50).Equal(view.Items[0].Subtotal))
	suite.Nil(view.Assignment)

	byCode, err := queries.NewGetShipmentByCodeQuery(s.Code().String())
	suite.Require().NoError(err)
	same, err := handler.Handle(ctx, byCode)
	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(same.ID))
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_NotFound() {
	handler := queries.NewGetShipmentQueryHandler(suite.DB)

	query, err := queries.NewGetShipmentQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	query, err = queries.NewGetShipmentByCodeQuery("ENV-20240101-ABCDEF")
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_WithAssignment() {
	ctx := context.Background()
	carrierID := kernel.NewUUID()
	s := suite.addAssigned(carrierID, time.Now().UTC())

	query, err := queries.NewGetShipmentQuery(s.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetShipmentQueryHandler(suite.DB).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(shipment.Assigned.String(), view.Status)
	suite.Require().NotNil(view.Assignment)
	suite.True(carrierID.IsEqual(view.Assignment.CarrierID))
	suite.Nil(view.Assignment.AcceptedAt)
}

func (suite *QueriesIntegrationTestSuite) TestListCarrierShipments_Ordering() {
	ctx := context.Background()
	repo := suite.factory.Create().ShipmentRepository()
	carrierID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Second)

	older := suite.addAssigned(carrierID, base.Add(-2*time.Hour))
	newer := suite.addAssigned(carrierID, base.Add(-time.Hour))
	delivered := suite.addAssigned(carrierID, base)
	cancelled := suite.addAssigned(carrierID, base.Add(time.Minute))
	suite.addAssigned(kernel.NewUUID(), base)

	current, err := repo.Get(ctx, delivered.ID())
	suite.Require().NoError(err)
	_, err = current.Accept(base)
	suite.Require().NoError(err)
	suite.Require().NoError(current.StartTransit(base))
	suite.Require().NoError(current.Deliver(base))
	suite.Require().NoError(repo.Update(ctx, current))

	current, err = repo.Get(ctx, cancelled.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(current.Cancel("customer request", base))
	suite.Require().NoError(repo.Update(ctx, current))

	query, err := queries.NewListCarrierShipmentsQuery(carrierID)
	suite.Require().NoError(err)
	views, err := queries.NewListCarrierShipmentsQueryHandler(suite.DB).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(views, 3)
	suite.True(newer.ID().IsEqual(views[0].ID))
	suite.True(older.ID().IsEqual(views[1].ID))
	suite.True(delivered.ID().IsEqual(views[2].ID))
	suite.Equal(shipment.Delivered.String(), views[2].Status)
}

func (suite *QueriesIntegrationTestSuite) TestListCarrierShipments_UnknownCarrierIsEmpty() {
	query, err := queries.NewListCarrierShipmentsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	views, err := queries.NewListCarrierShipmentsQueryHandler(suite.DB).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *QueriesIntegrationTestSuite) TestGetTracking_NewestFirstWithLimit() {
	ctx := context.Background()
	s := suite.addPending()
	start := time.Now().UTC().Truncate(time.Second)

	points := make([]*tracking.Point, 0, 5)
	for i := range 5 {
		position, err := kernel.NewGeoPoint(-17.78+float64(i)*0.01, -63.18)
		suite.Require().NoError(err)
		p, err := tracking.NewPoint(kernel.NewUUID(), s.ID(), position, 40, start.Add(time.Duration(i)*time.Second))
		suite.Require().NoError(err)
		points = append(points, p)
	}
	suite.Require().NoError(suite.factory.Create().TrackingRepository().AddAll(ctx, points))

	query, err := queries.NewGetTrackingQuery(s.ID())
	suite.Require().NoError(err)
	views, err := queries.NewGetTrackingQueryHandler(suite.DB, 3).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(views, 3)
	suite.True(points[4].ID().IsEqual(views[0].ID))
	suite.True(points[2].ID().IsEqual(views[2].ID))
	suite.True(views[0].CapturedAt.After(views[1].CapturedAt))
}

func (suite *QueriesIntegrationTestSuite) TestGetTracking_EmptyAndUnknown() {
	ctx := context.Background()
	handler := queries.NewGetTrackingQueryHandler(suite.DB, 0)
	s := suite.addPending()

	query, err := queries.NewGetTrackingQuery(s.ID())
	suite.Require().NoError(err)
	views, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(views)

	query, err = queries.NewGetTrackingQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetTracking_MissingTableIsEmpty() {
	ctx := context.Background()
	s := suite.addPending()
	suite.Require().NoError(suite.DB.Migrator().DropTable(&trackingrepo.PointDTO{}))
	defer func() {
		suite.Require().NoError(suite.DB.AutoMigrate(&trackingrepo.PointDTO{}))
	}()

	query, err := queries.NewGetTrackingQuery(s.ID())
	suite.Require().NoError(err)
	views, err := queries.NewGetTrackingQueryHandler(suite.DB, 0).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *QueriesIntegrationTestSuite) TestGetSalesNote() {
	ctx := context.Background()
	handler := queries.NewGetSalesNoteQueryHandler(suite.DB)
	s := suite.addPending()

	query, err := queries.NewGetSalesNoteQuery(s.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	deliveredAt := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	delivered := suite.deliver(s, deliveredAt)
	note, err := salesnote.Issue(kernel.NewUUID(), delivered,
		salesnote.Destination{WarehouseName: "Central", AddressLine: "Av. Banzer 300, Santa Cruz"}, deliveredAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().SalesNoteRepository().Add(ctx, note))

	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(salesnote.Number(deliveredAt, s.Code()), view.Number)
	suite.Equal(s.Code().String(), view.ShipmentCode)
	suite.Equal("Central", view.WarehouseName)
	suite.True(decimal.NewFromInt(90).Equal(view.TotalPrice))
	suite.True(decimal.NewFromInt(15).Equal(view.TotalQuantity))
}

func (suite *QueriesIntegrationTestSuite) TestChecklists() {
	ctx := context.Background()
	s := suite.addPending()
	reviewerID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := checklist.NewChecklist(kernel.NewUUID(), s.ID(), s.WarehouseID(),
		checklist.Flags{ProductsComplete: true, PackagingIntact: true}, checklist.Good, &reviewerID, "dented box", now)
	suite.Require().NoError(err)
	second, err := checklist.NewChecklist(kernel.NewUUID(), s.ID(), s.WarehouseID(),
		checklist.Flags{}, checklist.Poor, nil, "", now.Add(time.Minute))
	suite.Require().NoError(err)

	repo := suite.factory.Create().ChecklistRepository()
	suite.Require().NoError(repo.Add(ctx, second))
	suite.Require().NoError(repo.Add(ctx, first))

	getQuery, err := queries.NewGetChecklistQuery(first.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetChecklistQueryHandler(suite.DB).Handle(ctx, getQuery)
	suite.Require().NoError(err)
	suite.True(view.ProductsComplete)
	suite.False(view.NoVisibleDamage)
	suite.Equal("good", view.Condition)
	suite.Equal("dented box", view.Notes)
	suite.Require().NotNil(view.ReviewerID)
	suite.True(reviewerID.IsEqual(*view.ReviewerID))

	listQuery, err := queries.NewListShipmentChecklistsQuery(s.ID())
	suite.Require().NoError(err)
	views, err := queries.NewListShipmentChecklistsQueryHandler(suite.DB).Handle(ctx, listQuery)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(first.ID().IsEqual(views[0].ID))
	suite.Nil(views[1].ReviewerID)
}

func (suite *QueriesIntegrationTestSuite) TestChecklists_NotFound() {
	ctx := context.Background()

	getQuery, err := queries.NewGetChecklistQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetChecklistQueryHandler(suite.DB).Handle(ctx, getQuery)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	listQuery, err := queries.NewListShipmentChecklistsQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewListShipmentChecklistsQueryHandler(suite.DB).Handle(ctx, listQuery)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) addPending() *shipment.Shipment {
	warehouseID := suite.SeedWarehouse("Central", "Av. Banzer 300", "Santa Cruz", nil)
	s := suite.NewShipment(warehouseID)
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(context.Background(), s))
	return s
}

func (suite *QueriesIntegrationTestSuite) addAssigned(carrierID kernel.UUID, at time.Time) *shipment.Shipment {
	ctx := context.Background()
	repo := suite.factory.Create().ShipmentRepository()
	s := suite.addPending()

	current, err := repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(current.Assign(kernel.NewUUID(), carrierID, kernel.NewUUID(), at))
	suite.Require().NoError(repo.Update(ctx, current))
	return current
}

func (suite *QueriesIntegrationTestSuite) deliver(s *shipment.Shipment, at time.Time) *shipment.Shipment {
	ctx := context.Background()
	repo := suite.factory.Create().ShipmentRepository()

	current, err := repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(current.Assign(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), at))
	_, err = current.Accept(at)
	suite.Require().NoError(err)
	suite.Require().NoError(current.StartTransit(at))
	suite.Require().NoError(current.Deliver(at))
	suite.Require().NoError(repo.Update(ctx, current))

	delivered, err := repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	return delivered
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

// Package pgtest runs repository and query tests against a disposable PostgreSQL container.
package pgtest

import (
	"context"
	"strings"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/referencerepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Suite starts one container per test suite, migrates every table and truncates them before
// each test. Embed it in a concrete suite.
type Suite struct {
	suite.Suite
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

func (s *Suite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.Container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)
	s.DB = db

	s.Require().NoError(postgres_adapter.Migrate(ctx, db, true))
}

func (s *Suite) TearDownSuite() {
	if s.Container != nil {
		err := s.Container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *Suite) SetupTest() {
	err := s.DB.Exec("TRUNCATE TABLE " + strings.Join(postgres_adapter.Tables(), ", ") + " CASCADE").Error
	s.Require().NoError(err)
}

// SeedWarehouse inserts a warehouse. A nil location leaves the address without coordinates.
func (s *Suite) SeedWarehouse(name, street, city string, location *kernel.GeoPoint) kernel.UUID {
	address := referencerepo.AddressDTO{ID: uuid.New(), Street: street, City: city}
	if location != nil {
		lat, lon := location.Latitude(), location.Longitude()
		address.Latitude = &lat
		address.Longitude = &lon
	}
	s.Require().NoError(s.DB.Create(&address).Error)

	warehouse := referencerepo.WarehouseDTO{ID: uuid.New(), Name: name, AddressID: &address.ID}
	s.Require().NoError(s.DB.Create(&warehouse).Error)
	return kernel.MustUUIDFromRaw(warehouse.ID)
}

func (s *Suite) SeedCarrier(name string, active bool) kernel.UUID {
	carrier := referencerepo.CarrierDTO{ID: uuid.New(), Name: name, Active: true}
	s.Require().NoError(s.DB.Create(&carrier).Error)
	if !active {
		s.Require().NoError(s.DB.Model(&carrier).Update("active", false).Error)
	}
	return kernel.MustUUIDFromRaw(carrier.ID)
}

func (s *Suite) SeedVehicle(plate string, active bool) kernel.UUID {
	vehicle := referencerepo.VehicleDTO{ID: uuid.New(), Plate: plate, Active: true}
	s.Require().NoError(s.DB.Create(&vehicle).Error)
	if !active {
		s.Require().NoError(s.DB.Model(&vehicle).Update("active", false).Error)
	}
	return kernel.MustUUIDFromRaw(vehicle.ID)
}

// Count returns the number of rows of table matching the condition.
func (s *Suite) Count(table, where string, args ...any) int64 {
	var n int64
	s.Require().NoError(s.DB.Table(table).Where(where, args...).Count(&n).Error)
	return n
}

// NewShipment builds a pending shipment with two line items: 10 units weighing 2 at price 5,
// and 5 units weighing 1 at price 8.
func (s *Suite) NewShipment(warehouseID kernel.UUID) *shipment.Shipment {
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(10), decimal.NewFromInt(2), decimal.NewFromInt(5))
	s.Require().NoError(err)
	second, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(5), decimal.NewFromInt(1), decimal.NewFromInt(8))
	s.Require().NoError(err)

	created, err := shipment.NewShipment(kernel.NewUUID(), shipment.NewCode(now, kernel.NewUUID()), warehouseID,
		nil, []*shipment.LineItem{first, second}, "", nil, now)
	s.Require().NoError(err)
	return created
}

// Package referencerepo reads the master data the shipment engine depends on but does not
// manage: warehouses, their addresses, carriers and vehicles. The DTOs exist so that tests and
// local environments can create the tables with AutoMigrate.
package referencerepo

import (
	"github.com/google/uuid"
)

type WarehouseDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(255);not null"`
	AddressID *uuid.UUID `gorm:"type:uuid"`
}

func (WarehouseDTO) TableName() string {
	return "warehouses"
}

type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Street    string    `gorm:"type:varchar(255)"`
	City      string    `gorm:"type:varchar(128)"`
	Latitude  *float64  `gorm:"type:double precision"`
	Longitude *float64  `gorm:"type:double precision"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

type CarrierDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Active bool      `gorm:"not null;default:true"`
}

func (CarrierDTO) TableName() string {
	return "carriers"
}

type VehicleDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Plate  string    `gorm:"type:varchar(32);not null"`
	Active bool      `gorm:"not null;default:true"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// Models lists the reference tables for AutoMigrate.
func Models() []any {
	return []any{&AddressDTO{}, &WarehouseDTO{}, &CarrierDTO{}, &VehicleDTO{}}
}

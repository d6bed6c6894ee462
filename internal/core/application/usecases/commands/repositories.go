// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
// Status changes are published only after the transaction that persisted them has committed.
package commands

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest set of repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	ReferenceRepoFactory interface {
		ReferenceRepository() ports.ReferenceRepository
	}

	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	SalesNoteRepoFactory interface {
		SalesNoteRepository() ports.SalesNoteRepository
	}

	ChecklistRepoFactory interface {
		ChecklistRepository() ports.ChecklistRepository
	}

	// ShipmentUoW serves lifecycle transitions that touch only the shipment aggregate
	// and read master data.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		ReferenceRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// DeliveryUoW couples the delivered transition with the inventory fan-out.
	DeliveryUoW interface {
		TxManager
		ShipmentRepoFactory
		InventoryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	TrackingUoW interface {
		TxManager
		ShipmentRepoFactory
		TrackingRepoFactory
		ReferenceRepoFactory
	}

	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	SalesNoteUoW interface {
		TxManager
		ShipmentRepoFactory
		SalesNoteRepoFactory
		ReferenceRepoFactory
	}

	SalesNoteUoWFactory interface {
		Create() SalesNoteUoW
	}

	ChecklistUoW interface {
		TxManager
		ShipmentRepoFactory
		ChecklistRepoFactory
		ReferenceRepoFactory
	}

	ChecklistUoWFactory interface {
		Create() ChecklistUoW
	}
)

// TrackingScheduler hands a shipment id to the background tracking dispatcher.
// Schedule returns false when the task was dropped; the retry job picks it up later.
type TrackingScheduler interface {
	Schedule(shipmentID kernel.UUID) bool
}

package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// LineItemInput is one requested product row.
type LineItemInput struct {
	ProductID  kernel.UUID
	Quantity   decimal.Decimal
	UnitWeight decimal.Decimal
	UnitPrice  decimal.Decimal
}

// CreateShipmentCommand registers a new pending shipment bound for a warehouse.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	cmd, err := NewCreateShipmentCommand(shipmentID, warehouseID, nil, []LineItemInput{
//	    {ProductID: productID, Quantity: decimal.NewFromInt(10), UnitWeight: w, UnitPrice: p},
//	}, "handle with care", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID          kernel.UUID
	warehouseID         kernel.UUID
	addressID           *kernel.UUID
	items               []LineItemInput
	notes               string
	estimatedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates identifiers and requires at least one line item.
// Per-item values are validated by the domain when the handler builds the line items.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	warehouseID kernel.UUID,
	addressID *kernel.UUID,
	items []LineItemInput,
	notes string,
	estimatedDeliveryAt *time.Time,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		notes:               notes,
		estimatedDeliveryAt: estimatedDeliveryAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setWarehouseID(warehouseID),
		cmd.setAddressID(addressID),
		cmd.setItems(items),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateShipmentCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateShipmentCommand) AddressID() *kernel.UUID {
	return c.addressID
}

func (c CreateShipmentCommand) Items() []LineItemInput {
	return c.items
}

func (c CreateShipmentCommand) Notes() string {
	return c.notes
}

func (c CreateShipmentCommand) EstimatedDeliveryAt() *time.Time {
	return c.estimatedDeliveryAt
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CreateShipmentCommand) setWarehouseID(id kernel.UUID) error {
	if id.Validate() != nil {
		return shipment.ErrWarehouseIsRequired
	}
	c.warehouseID = id
	return nil
}

func (c *CreateShipmentCommand) setAddressID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("address_id", err)
	}
	c.addressID = id
	return nil
}

func (c *CreateShipmentCommand) setItems(items []LineItemInput) error {
	if len(items) == 0 {
		return shipment.ErrItemsAreRequired
	}
	c.items = append([]LineItemInput(nil), items...)
	return nil
}

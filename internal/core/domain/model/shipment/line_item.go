package shipment

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is one product row of a shipment. It is created together with the shipment and
// never modified afterwards.
type LineItem struct {
	id         kernel.UUID
	productID  kernel.UUID
	quantity   decimal.Decimal
	unitWeight decimal.Decimal
	unitPrice  decimal.Decimal
}

// NewLineItem validates a product reference, a positive quantity and non-negative unit values.
func NewLineItem(id, productID kernel.UUID, quantity, unitWeight, unitPrice decimal.Decimal) (*LineItem, error) {
	item := &LineItem{}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitWeight(unitWeight),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// ID returns the line item identifier. Inventory entries reference it one to one.
func (i *LineItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the product shipped on this row.
func (i *LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units, always greater than zero.
func (i *LineItem) Quantity() decimal.Decimal {
	return i.quantity
}

// UnitWeight returns the weight of a single unit.
func (i *LineItem) UnitWeight() decimal.Decimal {
	return i.unitWeight
}

// UnitPrice returns the price of a single unit.
func (i *LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
//
// Example:
//
//	item, _ := shipment.NewLineItem(id, productID, decimal.NewFromInt(10), decimal.NewFromInt(2), decimal.NewFromInt(5))
//	item.Subtotal()    // 50
//	item.TotalWeight() // 20
func (i *LineItem) Subtotal() decimal.Decimal {
	return i.quantity.Mul(i.unitPrice)
}

// TotalWeight returns quantity times unit weight.
func (i *LineItem) TotalWeight() decimal.Decimal {
	return i.quantity.Mul(i.unitWeight)
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product_id", err)
	}
	i.productID = id
	return nil
}

func (i *LineItem) setQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", q))
	}
	i.quantity = q
	return nil
}

func (i *LineItem) setUnitWeight(w decimal.Decimal) error {
	if w.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit_weight", fmt.Errorf("%s is negative", w))
	}
	i.unitWeight = w
	return nil
}

func (i *LineItem) setUnitPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit_price", fmt.Errorf("%s is negative", p))
	}
	i.unitPrice = p
	return nil
}

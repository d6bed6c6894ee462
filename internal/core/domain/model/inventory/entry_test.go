package inventory_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/inventory"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveredShipment(t *testing.T, deliver bool) *shipment.Shipment {
	t.Helper()
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	var items []*shipment.LineItem
	for _, q := range []int64{10, 5} {
		it, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewUUID(),
			decimal.NewFromInt(q), decimal.NewFromFloat(1.5), decimal.NewFromInt(3))
		require.NoError(t, err)
		items = append(items, it)
	}

	s, err := shipment.NewShipment(kernel.NewUUID(), shipment.NewCode(now, kernel.NewUUID()),
		kernel.NewUUID(), nil, items, "", nil, now)
	require.NoError(t, err)
	require.NoError(t, s.Assign(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now))
	_, err = s.Accept(now)
	require.NoError(t, err)
	require.NoError(t, s.StartTransit(now))
	if deliver {
		require.NoError(t, s.Deliver(now.Add(time.Hour)))
	}
	return s
}

func TestEntriesFromDelivery(t *testing.T) {
	t.Run("should create one available entry per line item", func(t *testing.T) {
		s := deliveredShipment(t, true)

		entries, err := inventory.EntriesFromDelivery(s, kernel.NewUUID)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		for i, e := range entries {
			item := s.Items()[i]
			assert.True(t, e.WarehouseID().IsEqual(s.WarehouseID()))
			assert.True(t, e.ShipmentID().IsEqual(s.ID()))
			assert.True(t, e.ProductID().IsEqual(item.ProductID()))
			assert.True(t, e.LineItemID().IsEqual(item.ID()))
			assert.True(t, item.Quantity().Equal(e.Quantity()))
			assert.True(t, item.TotalWeight().Equal(e.TotalWeight()))
			assert.Equal(t, *s.DeliveredAt(), e.ReceivedAt())
			assert.Equal(t, inventory.StatusAvailable, e.Status())
		}
		assert.True(t, decimal.NewFromInt(15).Equal(entries[0].Quantity().Add(entries[1].Quantity())))
	})

	t.Run("should refuse shipment still in transit", func(t *testing.T) {
		s := deliveredShipment(t, false)

		entries, err := inventory.EntriesFromDelivery(s, kernel.NewUUID)

		require.ErrorIs(t, err, inventory.ErrShipmentNotDelivered)
		assert.Nil(t, entries)
	})
}

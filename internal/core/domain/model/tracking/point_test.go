package tracking_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	pos, err := kernel.NewGeoPoint(-17.78, -63.18)
	require.NoError(t, err)
	at := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	t.Run("should create point", func(t *testing.T) {
		shipmentID := kernel.NewUUID()

		p, err := tracking.NewPoint(kernel.NewUUID(), shipmentID, pos, 42.5, at)

		require.NoError(t, err)
		assert.True(t, p.ShipmentID().IsEqual(shipmentID))
		assert.Equal(t, pos, p.Position())
		assert.InDelta(t, 42.5, p.Speed(), 1e-9)
		assert.Equal(t, at, p.CapturedAt())
	})

	t.Run("should allow zero speed", func(t *testing.T) {
		_, err := tracking.NewPoint(kernel.NewUUID(), kernel.NewUUID(), pos, 0, at)
		require.NoError(t, err)
	})

	t.Run("should reject negative speed", func(t *testing.T) {
		p, err := tracking.NewPoint(kernel.NewUUID(), kernel.NewUUID(), pos, -1, at)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, p)
	})

	t.Run("should reject missing shipment and position", func(t *testing.T) {
		p, err := tracking.NewPoint(kernel.NewUUID(), kernel.UUID{}, kernel.GeoPoint{}, 1, at)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "shipment_id")
		assert.Contains(t, err.Error(), "geo point must be created")
	})
}

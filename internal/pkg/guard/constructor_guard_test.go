package guard_test

import (
	"errors"
	"testing"

	"shipping/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Shipment must be created via NewShipment")

		err := g.Validate(expected)

		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errPlateNotConstructed := errors.New("Plate must be created via newPlate")

	type plate struct {
		value string
		guard guard.ConstructorGuard
	}

	newPlate := func(v string) (plate, error) {
		if v == "" {
			return plate{}, errors.New("plate is required")
		}
		return plate{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("built_through_constructor", func(t *testing.T) {
		p, err := newPlate("ABC-123")

		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPlateNotConstructed))
	})

	t.Run("built_as_literal", func(t *testing.T) {
		p := plate{value: "ABC-123"}

		require.ErrorIs(t, p.guard.Validate(errPlateNotConstructed), errPlateNotConstructed)
	})

	t.Run("copies_keep_the_mark", func(t *testing.T) {
		p, _ := newPlate("XYZ-987")
		cp := p

		require.NoError(t, cp.guard.Validate(errPlateNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	for range b.N {
		_ = g.Validate(err)
	}
}

//go:build unit

package inventory_test

import (
	"testing"

	"ticketapp/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	eventID := uuid.New()

	t.Run("consumes within capacity", func(t *testing.T) {
		c := inventory.NewCounter(eventID, 10)

		c, err := c.Reserve(4)
		require.NoError(t, err)
		assert.Equal(t, 4, c.Consumed())
		assert.Equal(t, 6, c.Remaining())

		c, err = c.Reserve(6)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Remaining())
	})

	t.Run("rejects oversell and leaves the counter unchanged", func(t *testing.T) {
		c := inventory.NewCounter(eventID, 5)
		c, err := c.Reserve(3)
		require.NoError(t, err)

		after, err := c.Reserve(3)
		require.ErrorIs(t, err, inventory.ErrInsufficientCapacity)
		assert.Equal(t, c.Consumed(), after.Consumed())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		c := inventory.NewCounter(eventID, 5)

		_, err := c.Reserve(0)
		require.ErrorIs(t, err, inventory.ErrInvalidQuantity)
		_, err = c.Reserve(-1)
		require.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	})

	t.Run("zero capacity never admits", func(t *testing.T) {
		c := inventory.NewCounter(eventID, 0)
		_, err := c.Reserve(1)
		require.ErrorIs(t, err, inventory.ErrInsufficientCapacity)
	})
}

func TestRelease(t *testing.T) {
	eventID := uuid.New()

	t.Run("returns units to the pool", func(t *testing.T) {
		c := inventory.ReconstructCounter(eventID, 10, 7)

		c, clamped := c.Release(3)
		assert.False(t, clamped)
		assert.Equal(t, 4, c.Consumed())
	})

	t.Run("clamps at zero", func(t *testing.T) {
		c := inventory.ReconstructCounter(eventID, 10, 2)

		c, clamped := c.Release(5)
		assert.True(t, clamped)
		assert.Equal(t, 0, c.Consumed())
		assert.Equal(t, 10, c.Remaining())
	})

	t.Run("non-positive quantity is a no-op", func(t *testing.T) {
		c := inventory.ReconstructCounter(eventID, 10, 2)

		after, clamped := c.Release(0)
		assert.False(t, clamped)
		assert.Equal(t, 2, after.Consumed())
	})
}

//go:build unit

package booking_test

import (
	"testing"
	"time"

	"ticketapp/internal/domain/booking"
	"ticketapp/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holdCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewHold(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusHold, actual.Status())
		assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
		assert.True(t, actual.IsHold())
		assert.True(t, actual.CancellationAllowed())
		require.NotNil(t, actual.HoldExpiry())
		assert.Equal(t, b.Now.Add(b.HoldTTL), *actual.HoldExpiry())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []holdCase{
			{
				name:   "zero quantity",
				mutate: func(b *builder.BookingBuilder) { b.WithQuantity(0) },
				errIs:  booking.ErrInvalidQuantity,
			},
			{
				name:   "negative quantity",
				mutate: func(b *builder.BookingBuilder) { b.WithQuantity(-3) },
				errIs:  booking.ErrInvalidQuantity,
			},
			{
				name:   "empty ticket type",
				mutate: func(b *builder.BookingBuilder) { b.WithTicketType("") },
				errIs:  booking.ErrEmptyTicketType,
			},
			{
				name:   "whitespace ticket type",
				mutate: func(b *builder.BookingBuilder) { b.WithTicketType("   ") },
				errIs:  booking.ErrEmptyTicketType,
			},
			{
				name:   "minimum quantity",
				mutate: func(b *builder.BookingBuilder) { b.WithQuantity(1) },
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()
				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, actual)
				} else {
					require.Nil(t, actual)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("ticket type is trimmed", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithTicketType("  VIP  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "VIP", actual.TicketType())
	})
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC)

	t.Run("from hold", func(t *testing.T) {
		hold := mustHold(t)

		confirmed, effect, err := hold.Confirm("pay_abc123", now)
		require.NoError(t, err)
		require.NotNil(t, confirmed)

		assert.Equal(t, booking.StatusConfirmed, confirmed.Status())
		assert.Equal(t, booking.EffectIssueTicket, effect)
		assert.Nil(t, confirmed.HoldExpiry())
		assert.Equal(t, booking.PaymentSuccess, confirmed.PaymentStatus())
		require.NotNil(t, confirmed.PaymentRef())
		assert.Equal(t, "pay_abc123", *confirmed.PaymentRef())
		assert.Equal(t, now, confirmed.UpdatedAt())

		// Original value is untouched.
		assert.Equal(t, booking.StatusHold, hold.Status())
	})

	t.Run("empty payment ref", func(t *testing.T) {
		hold := mustHold(t)

		_, effect, err := hold.Confirm("  ", now)
		require.ErrorIs(t, err, booking.ErrEmptyPaymentRef)
		assert.Equal(t, booking.EffectNone, effect)
	})

	t.Run("already confirmed", func(t *testing.T) {
		hold := mustHold(t)
		confirmed, _, err := hold.Confirm("pay_abc123", now)
		require.NoError(t, err)

		_, effect, err := confirmed.Confirm("pay_other", now.Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrAlreadyFinalized)
		assert.Equal(t, booking.EffectNone, effect)
	})

	t.Run("already cancelled", func(t *testing.T) {
		hold := mustHold(t)
		cancelled, _, err := hold.Cancel(now)
		require.NoError(t, err)

		_, _, err = cancelled.Confirm("pay_abc123", now.Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrAlreadyFinalized)
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC)

	t.Run("from hold", func(t *testing.T) {
		hold := mustHold(t)

		cancelled, effect, err := hold.Cancel(now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.Equal(t, booking.EffectReleaseInventory, effect)
		assert.Nil(t, cancelled.HoldExpiry())
		assert.Equal(t, booking.PaymentCancelled, cancelled.PaymentStatus())
	})

	t.Run("terminal states reject cancel", func(t *testing.T) {
		hold := mustHold(t)

		confirmed, _, err := hold.Confirm("pay_abc123", now)
		require.NoError(t, err)
		_, effect, err := confirmed.Cancel(now.Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrAlreadyFinalized)
		assert.Equal(t, booking.EffectNone, effect)

		cancelled, _, err := hold.Cancel(now)
		require.NoError(t, err)
		_, _, err = cancelled.Cancel(now.Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrAlreadyFinalized)
	})

	t.Run("cancellation not allowed", func(t *testing.T) {
		hold := mustHold(t)
		locked := booking.Reconstruct(
			hold.ID(), hold.UserID(), hold.EventID(), hold.TicketType(), hold.Quantity(),
			booking.StatusHold, hold.HoldExpiry(), hold.PaymentStatus(), nil, false,
			hold.CreatedAt(), hold.UpdatedAt(),
		)

		_, _, err := locked.Cancel(now)
		require.ErrorIs(t, err, booking.ErrCancellationDeny)
	})
}

func TestExpire(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ttl := 10 * time.Minute

	t.Run("after expiry", func(t *testing.T) {
		hold := mustHold(t)

		expired, effect, err := hold.Expire(base.Add(ttl).Add(time.Second))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelled, expired.Status())
		assert.Equal(t, booking.EffectReleaseInventory, effect)
		assert.Equal(t, booking.PaymentExpired, expired.PaymentStatus())
	})

	t.Run("before expiry", func(t *testing.T) {
		hold := mustHold(t)

		_, effect, err := hold.Expire(base.Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrHoldNotExpired)
		assert.Equal(t, booking.EffectNone, effect)
	})

	t.Run("exactly at expiry is not expired", func(t *testing.T) {
		hold := mustHold(t)

		_, _, err := hold.Expire(base.Add(ttl))
		require.ErrorIs(t, err, booking.ErrHoldNotExpired)
	})

	t.Run("already finalized", func(t *testing.T) {
		hold := mustHold(t)
		confirmed, _, err := hold.Confirm("pay_abc123", base.Add(time.Minute))
		require.NoError(t, err)

		_, _, err = confirmed.Expire(base.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrAlreadyFinalized)
	})

	t.Run("hold without expiry", func(t *testing.T) {
		hold := mustHold(t)
		broken := booking.Reconstruct(
			hold.ID(), hold.UserID(), hold.EventID(), hold.TicketType(), hold.Quantity(),
			booking.StatusHold, nil, hold.PaymentStatus(), nil, true,
			hold.CreatedAt(), hold.UpdatedAt(),
		)

		_, _, err := broken.Expire(base.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrMissingHoldExpiry)
	})
}

func TestHasExpired(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ttl := 10 * time.Minute
	hold := mustHold(t)

	assert.False(t, hold.HasExpired(base))
	assert.False(t, hold.HasExpired(base.Add(ttl)))
	assert.True(t, hold.HasExpired(base.Add(ttl).Add(time.Nanosecond)))

	confirmed, _, err := hold.Confirm("pay_abc123", base)
	require.NoError(t, err)
	assert.False(t, confirmed.HasExpired(base.Add(time.Hour)))
}

func mustHold(t *testing.T) *booking.Booking {
	t.Helper()
	hold, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	return hold
}

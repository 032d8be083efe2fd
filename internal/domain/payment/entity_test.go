//go:build unit

package payment_test

import (
	"testing"
	"time"

	"ticketapp/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()

	t.Run("starts pending", func(t *testing.T) {
		rec, err := payment.NewRecord(bookingID, userID, 5000, "USD", nil)
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPending, rec.Status())
		assert.Equal(t, int64(5000), rec.AmountCents())
		assert.Nil(t, rec.ProviderRef())
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		rec, err := payment.NewRecord(bookingID, userID, 0, "USD", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rec.AmountCents())
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := payment.NewRecord(bookingID, userID, -1, "USD", nil)
		require.ErrorIs(t, err, payment.ErrInvalidAmount)
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := payment.NewRecord(bookingID, userID, 5000, "", nil)
		require.ErrorIs(t, err, payment.ErrEmptyCurrency)
	})
}

func TestEvaluateCoupon(t *testing.T) {
	cases := []struct {
		name   string
		code   string
		amount int64
		want   payment.CouponOutcome
	}{
		{
			name:   "FREE100 zeroes the amount and succeeds instantly",
			code:   "FREE100",
			amount: 5000,
			want: payment.CouponOutcome{
				InstantSuccess: true,
				ProviderRef:    "COUPON-FREE100",
				AmountCents:    0,
				DiscountCents:  5000,
			},
		},
		{
			name:   "DEVTEST behaves like FREE100 with its own ref",
			code:   "DEVTEST",
			amount: 1200,
			want: payment.CouponOutcome{
				InstantSuccess: true,
				ProviderRef:    "COUPON-DEVTEST",
				AmountCents:    0,
				DiscountCents:  1200,
			},
		},
		{
			name:   "NEWUSER10 discounts ten percent and stays pending",
			code:   "NEWUSER10",
			amount: 5000,
			want: payment.CouponOutcome{
				AmountCents:   4500,
				DiscountCents: 500,
			},
		},
		{
			name:   "codes are case insensitive and trimmed",
			code:   "  free100  ",
			amount: 300,
			want: payment.CouponOutcome{
				InstantSuccess: true,
				ProviderRef:    "COUPON-FREE100",
				AmountCents:    0,
				DiscountCents:  300,
			},
		},
		{
			name:   "unknown code is a no-op",
			code:   "SUMMER50",
			amount: 5000,
			want:   payment.CouponOutcome{AmountCents: 5000},
		},
		{
			name:   "empty code is a no-op",
			code:   "",
			amount: 5000,
			want:   payment.CouponOutcome{AmountCents: 5000},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, payment.EvaluateCoupon(c.code, c.amount))
		})
	}
}

func TestApplyCoupon(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	code := "FREE100"

	t.Run("instant success finalizes without a provider", func(t *testing.T) {
		rec, err := payment.NewRecord(uuid.New(), uuid.New(), 5000, "USD", &code)
		require.NoError(t, err)

		applied := rec.ApplyCoupon(payment.EvaluateCoupon(code, rec.AmountCents()), now)

		assert.Equal(t, payment.StatusSuccess, applied.Status())
		assert.Equal(t, int64(0), applied.AmountCents())
		assert.Equal(t, int64(5000), applied.DiscountAppliedCents())
		require.NotNil(t, applied.ProviderRef())
		assert.Equal(t, "COUPON-FREE100", *applied.ProviderRef())
	})

	t.Run("discount coupon keeps the record pending", func(t *testing.T) {
		discount := "NEWUSER10"
		rec, err := payment.NewRecord(uuid.New(), uuid.New(), 5000, "USD", &discount)
		require.NoError(t, err)

		applied := rec.ApplyCoupon(payment.EvaluateCoupon(discount, rec.AmountCents()), now)

		assert.Equal(t, payment.StatusPending, applied.Status())
		assert.Equal(t, int64(4500), applied.AmountCents())
		assert.Equal(t, int64(500), applied.DiscountAppliedCents())
		assert.Nil(t, applied.ProviderRef())
	})
}

func TestMarkOutcome(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	newPending := func(t *testing.T) *payment.Record {
		t.Helper()
		rec, err := payment.NewRecord(uuid.New(), uuid.New(), 5000, "USD", nil)
		require.NoError(t, err)
		return rec
	}

	t.Run("records success", func(t *testing.T) {
		rec := newPending(t)

		final, err := rec.MarkOutcome("prov_123", payment.StatusSuccess, now)
		require.NoError(t, err)

		assert.Equal(t, payment.StatusSuccess, final.Status())
		require.NotNil(t, final.ProviderRef())
		assert.Equal(t, "prov_123", *final.ProviderRef())
	})

	t.Run("records failure", func(t *testing.T) {
		rec := newPending(t)

		final, err := rec.MarkOutcome("prov_123", payment.StatusFailed, now)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusFailed, final.Status())
	})

	t.Run("terminal record rejects further outcomes", func(t *testing.T) {
		rec := newPending(t)
		final, err := rec.MarkOutcome("prov_123", payment.StatusSuccess, now)
		require.NoError(t, err)

		_, err = final.MarkOutcome("prov_456", payment.StatusFailed, now.Add(time.Minute))
		require.ErrorIs(t, err, payment.ErrAlreadyFinal)
	})

	t.Run("pending is not a valid outcome", func(t *testing.T) {
		rec := newPending(t)

		_, err := rec.MarkOutcome("prov_123", payment.StatusPending, now)
		require.ErrorIs(t, err, payment.ErrInvalidOutcome)
	})

	t.Run("empty provider ref rejected", func(t *testing.T) {
		rec := newPending(t)

		_, err := rec.MarkOutcome("", payment.StatusSuccess, now)
		require.ErrorIs(t, err, payment.ErrEmptyProviderID)
	})
}

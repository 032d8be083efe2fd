package repository

import (
	"context"
	"errors"
	"time"

	"ticketapp/internal/domain/payment"
	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, dbtx db.DBTX, rec *payment.Record) error {
	const query = `
		INSERT INTO payments (
			id, booking_id, user_id, amount_cents, currency, coupon_code,
			discount_applied_cents, provider_ref, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`

	_, err := dbtx.Exec(ctx, query,
		rec.ID(), rec.BookingID(), rec.UserID(), rec.AmountCents(), rec.Currency(),
		rec.CouponCode(), rec.DiscountAppliedCents(), rec.ProviderRef(), rec.Status(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*payment.Record, error) {
	const query = `
		SELECT id, booking_id, user_id, amount_cents, currency, coupon_code,
		       discount_applied_cents, provider_ref, status, created_at, updated_at
		FROM payments
		WHERE id = $1`

	return scanPayment(dbtx.QueryRow(ctx, query, id))
}

// Update applies a terminal outcome with a compare-and-set on PENDING, the
// payment-side twin of the booking finalize.
func (r *PaymentRepository) Update(ctx context.Context, dbtx db.DBTX, rec *payment.Record) (bool, error) {
	const query = `
		UPDATE payments
		SET provider_ref = $2, status = $3, updated_at = $4
		WHERE id = $1 AND status = 'PENDING'`

	tag, err := dbtx.Exec(ctx, query, rec.ID(), rec.ProviderRef(), rec.Status(), rec.UpdatedAt())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update payment", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanPayment(row pgx.Row) (*payment.Record, error) {
	var (
		id                   uuid.UUID
		bookingID            uuid.UUID
		userID               uuid.UUID
		amountCents          int64
		currency             string
		couponCode           *string
		discountAppliedCents int64
		providerRef          *string
		status               string
		createdAt            time.Time
		updatedAt            time.Time
	)
	err := row.Scan(
		&id, &bookingID, &userID, &amountCents, &currency, &couponCode,
		&discountAppliedCents, &providerRef, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan payment", err)
	}

	return payment.ReconstructRecord(
		id, bookingID, userID, amountCents, currency, couponCode,
		discountAppliedCents, providerRef, payment.Status(status),
		createdAt, updatedAt,
	), nil
}

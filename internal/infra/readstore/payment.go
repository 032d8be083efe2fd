package readstore

import (
	"context"
	"errors"

	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"
	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(db db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: db}
}

const paymentColumns = `
	id, booking_id, user_id, amount_cents, currency, coupon_code,
	discount_applied_cents, provider_ref, status, created_at, updated_at`

func (s *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`
	return s.scanOne(s.db.QueryRow(ctx, query, id))
}

func (s *PaymentReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*queries.PaymentView, error) {
	// The latest attempt wins when a booking has several records.
	query := `SELECT` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1`
	return s.scanOne(s.db.QueryRow(ctx, query, bookingID))
}

func (s *PaymentReadStore) scanOne(row pgx.Row) (*queries.PaymentView, error) {
	var view queries.PaymentView
	err := row.Scan(
		&view.ID, &view.BookingID, &view.UserID, &view.AmountCents, &view.Currency,
		&view.CouponCode, &view.DiscountAppliedCents, &view.ProviderRef, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan payment", err)
	}
	return &view, nil
}

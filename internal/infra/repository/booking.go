package repository

import (
	"context"
	"errors"
	"time"

	"ticketapp/internal/domain/booking"
	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, user_id, event_id, ticket_type, quantity, status,
			hold_expiry, payment_status, payment_ref, cancellation_allowed,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := dbtx.Exec(ctx, query,
		b.ID(), b.UserID(), b.EventID(), b.TicketType(), b.Quantity(), b.Status(),
		b.HoldExpiry(), b.PaymentStatus(), b.PaymentRef(), b.CancellationAllowed(),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, user_id, event_id, ticket_type, quantity, status,
		       hold_expiry, payment_status, payment_ref, cancellation_allowed,
		       created_at, updated_at
		FROM bookings
		WHERE id = $1`

	var (
		bookingID           uuid.UUID
		userID              uuid.UUID
		eventID             uuid.UUID
		ticketType          string
		quantity            int
		status              string
		holdExpiry          *time.Time
		paymentStatus       string
		paymentRef          *string
		cancellationAllowed bool
		createdAt           time.Time
		updatedAt           time.Time
	)
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&bookingID, &userID, &eventID, &ticketType, &quantity, &status,
		&holdExpiry, &paymentStatus, &paymentRef, &cancellationAllowed,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return booking.Reconstruct(
		bookingID, userID, eventID, ticketType, quantity, booking.Status(status),
		holdExpiry, paymentStatus, paymentRef, cancellationAllowed,
		createdAt, updatedAt,
	), nil
}

// FinalizeFromHold is the single write path out of HOLD. The status predicate
// makes concurrent finalizers race on one row update; exactly one caller sees
// a row affected.
func (r *BookingRepository) FinalizeFromHold(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = $2, hold_expiry = $3, payment_status = $4,
		    payment_ref = $5, updated_at = $6
		WHERE id = $1 AND status = 'HOLD'`

	tag, err := dbtx.Exec(ctx, query,
		b.ID(), b.Status(), b.HoldExpiry(), b.PaymentStatus(), b.PaymentRef(), b.UpdatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to finalize booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

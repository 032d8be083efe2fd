package repository

import (
	"context"
	"time"

	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
)

type TicketRepository struct{}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{}
}

// Create inserts a ticket for a booking. Redelivered issuance messages hit
// the unique booking_id constraint and are swallowed, which makes the
// consumer idempotent.
func (r *TicketRepository) Create(ctx context.Context, dbtx db.DBTX, id, bookingID, userID, eventID uuid.UUID, qrPayload string, issuedAt time.Time) error {
	const query = `
		INSERT INTO tickets (id, booking_id, user_id, event_id, qr_payload, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (booking_id) DO NOTHING`

	if _, err := dbtx.Exec(ctx, query, id, bookingID, userID, eventID, qrPayload, issuedAt); err != nil {
		return infra.WrapRepoErr("failed to create ticket", err)
	}
	return nil
}

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

type TicketReadStore struct {
	db db.DBTX
}

func NewTicketReadStore(db db.DBTX) *TicketReadStore {
	return &TicketReadStore{db: db}
}

func (s *TicketReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*queries.TicketView, error) {
	const query = `
		SELECT id, booking_id, user_id, event_id, qr_payload, issued_at
		FROM tickets
		WHERE booking_id = $1`

	var view queries.TicketView
	err := s.db.QueryRow(ctx, query, bookingID).Scan(
		&view.ID, &view.BookingID, &view.UserID, &view.EventID, &view.QRPayload, &view.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("ticket not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find ticket by booking ID", err)
	}
	return &view, nil
}

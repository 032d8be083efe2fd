package readstore

import (
	"context"
	"errors"
	"time"

	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"
	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.user_id, b.event_id, e.title, b.ticket_type, b.quantity,
		       b.status, b.hold_expiry, b.payment_status, b.payment_ref,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.id = $1`

	var view queries.BookingView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.UserID, &view.EventID, &view.EventTitle, &view.TicketType,
		&view.Quantity, &view.Status, &view.HoldExpiry, &view.PaymentStatus,
		&view.PaymentRef, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &view, nil
}

func (s *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.event_id, e.title, b.ticket_type, b.quantity,
		       b.status, b.hold_expiry, b.payment_status, b.created_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user ID", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID, &item.EventID, &item.EventTitle, &item.TicketType, &item.Quantity,
			&item.Status, &item.HoldExpiry, &item.PaymentStatus, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

// FindExpiredHoldIDs feeds the reaper. Oldest holds first so a backlog drains
// in expiry order.
func (s *BookingReadStore) FindExpiredHoldIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM bookings
		WHERE status = 'HOLD' AND hold_expiry < $1
		ORDER BY hold_expiry ASC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired holds", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired hold ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired holds", err)
	}
	return ids, nil
}

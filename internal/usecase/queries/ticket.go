package queries

import (
	"context"

	"ticketapp/internal/domain/user"

	"github.com/google/uuid"
)

type TicketQueries interface {
	GetByBookingID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*TicketView, error)
}

type TicketReadStore interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*TicketView, error)
}

type ticketQueriesImpl struct {
	store TicketReadStore
}

func NewTicketQueries(store TicketReadStore) TicketQueries {
	return &ticketQueriesImpl{store: store}
}

func (q *ticketQueriesImpl) GetByBookingID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*TicketView, error) {
	view, err := q.store.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrDenied
	}
	return view, nil
}

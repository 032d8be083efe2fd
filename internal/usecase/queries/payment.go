package queries

import (
	"context"

	"ticketapp/internal/domain/user"

	"github.com/google/uuid"
)

type PaymentQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*PaymentView, error)
	// GetByIDSystem skips the ownership check. Internal callers only.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	GetByBookingID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*PaymentView, error)
}

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentView, error)
}

type paymentQueriesImpl struct {
	store PaymentReadStore
}

func NewPaymentQueries(store PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{store: store}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrDenied
	}
	return view, nil
}

func (q *paymentQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *paymentQueriesImpl) GetByBookingID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrDenied
	}
	return view, nil
}

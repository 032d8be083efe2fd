package queries

import (
	"context"
	"time"

	"ticketapp/internal/domain/user"
	"ticketapp/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDenied = errs.New("access denied")

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the ownership check. Internal callers only.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
	// FindExpiredHoldIDs returns ids of HOLD records whose expiry is strictly
	// before now, oldest first.
	FindExpiredHoldIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return q.store.FindByUserID(ctx, userID, int32(limit))
}

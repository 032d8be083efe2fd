package queries

import (
	"context"

	"github.com/google/uuid"
)

type EventQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*EventView, error)
	List(ctx context.Context, limit int) ([]*EventListItem, error)
}

type EventReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EventView, error)
	FindUpcoming(ctx context.Context, limit int32) ([]*EventListItem, error)
}

type eventQueriesImpl struct {
	store EventReadStore
}

func NewEventQueries(store EventReadStore) EventQueries {
	return &eventQueriesImpl{store: store}
}

func (q *eventQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*EventView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *eventQueriesImpl) List(ctx context.Context, limit int) ([]*EventListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.store.FindUpcoming(ctx, int32(limit))
}

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

type EventReadStore struct {
	db db.DBTX
}

func NewEventReadStore(db db.DBTX) *EventReadStore {
	return &EventReadStore{db: db}
}

func (s *EventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EventView, error) {
	const query = `
		SELECT e.id, e.host_id, e.title, e.description, e.venue, e.starts_at,
		       e.ticket_types, e.total_tickets, i.total - i.consumed AS remaining,
		       e.created_at, e.updated_at
		FROM events e
		JOIN event_inventory i ON i.event_id = e.id
		WHERE e.id = $1`

	var (
		view        queries.EventView
		description *string
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.HostID, &view.Title, &description, &view.Venue, &view.StartsAt,
		&view.TicketTypes, &view.TotalTickets, &view.Remaining,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event by ID", err)
	}

	if description != nil && *description != "" {
		view.Description = description
	}
	return &view, nil
}

func (s *EventReadStore) FindUpcoming(ctx context.Context, limit int32) ([]*queries.EventListItem, error) {
	const query = `
		SELECT e.id, e.title, e.venue, e.starts_at, i.total - i.consumed AS remaining
		FROM events e
		JOIN event_inventory i ON i.event_id = e.id
		WHERE e.starts_at > now()
		ORDER BY e.starts_at ASC
		LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming events", err)
	}
	defer rows.Close()

	items := make([]*queries.EventListItem, 0)
	for rows.Next() {
		var item queries.EventListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Venue, &item.StartsAt, &item.Remaining); err != nil {
			return nil, infra.WrapRepoErr("failed to scan event row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate event rows", err)
	}
	return items, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"ticketapp/internal/domain/event"
	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) Create(ctx context.Context, dbtx db.DBTX, e *event.Event) error {
	const query = `
		INSERT INTO events (
			id, host_id, title, description, venue, starts_at,
			ticket_types, total_tickets, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

	_, err := dbtx.Exec(ctx, query,
		e.ID(), e.HostID(), e.Title(), e.Description(), e.Venue(), e.StartsAt(),
		e.TicketTypes(), e.TotalTickets(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create event", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*event.Event, error) {
	const query = `
		SELECT id, host_id, title, description, venue, starts_at,
		       ticket_types, total_tickets, created_at, updated_at
		FROM events
		WHERE id = $1`

	var (
		eventID      uuid.UUID
		hostID       uuid.UUID
		title        string
		description  string
		venue        string
		startsAt     time.Time
		ticketTypes  []string
		totalTickets int
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&eventID, &hostID, &title, &description, &venue, &startsAt,
		&ticketTypes, &totalTickets, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event by ID", err)
	}

	return event.Reconstruct(
		eventID, hostID, title, description, venue, startsAt,
		ticketTypes, totalTickets, createdAt, updatedAt,
	), nil
}

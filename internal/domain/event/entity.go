package event

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle        = errors.New("event title must not be empty")
	ErrNoTicketTypes     = errors.New("event must define at least one ticket type")
	ErrInvalidCapacity   = errors.New("event capacity must be positive")
	ErrUnknownTicketType = errors.New("unknown ticket type")
)

// Event is a catalog entry plus the labels bookings are validated against.
// Capacity accounting lives in the inventory counter, created together with
// the event and owned exclusively by the ledger.
type Event struct {
	id           uuid.UUID
	hostID       uuid.UUID
	title        string
	description  string
	venue        string
	startsAt     time.Time
	ticketTypes  []string
	totalTickets int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewEvent(hostID uuid.UUID, title, description, venue string, startsAt time.Time, ticketTypes []string, totalTickets int) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if totalTickets <= 0 {
		return nil, ErrInvalidCapacity
	}

	labels := make([]string, 0, len(ticketTypes))
	for _, t := range ticketTypes {
		t = strings.TrimSpace(t)
		if t != "" {
			labels = append(labels, t)
		}
	}
	if len(labels) == 0 {
		return nil, ErrNoTicketTypes
	}

	return &Event{
		id:           uuid.New(),
		hostID:       hostID,
		title:        title,
		description:  description,
		venue:        venue,
		startsAt:     startsAt,
		ticketTypes:  labels,
		totalTickets: totalTickets,
	}, nil
}

func Reconstruct(
	id, hostID uuid.UUID,
	title, description, venue string,
	startsAt time.Time,
	ticketTypes []string,
	totalTickets int,
	createdAt, updatedAt time.Time,
) *Event {
	return &Event{
		id:           id,
		hostID:       hostID,
		title:        title,
		description:  description,
		venue:        venue,
		startsAt:     startsAt,
		ticketTypes:  ticketTypes,
		totalTickets: totalTickets,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (e *Event) HasTicketType(label string) bool {
	for _, t := range e.ticketTypes {
		if t == label {
			return true
		}
	}
	return false
}

func (e *Event) ValidateTicketType(label string) error {
	if !e.HasTicketType(label) {
		return ErrUnknownTicketType
	}
	return nil
}

func (e *Event) ID() uuid.UUID         { return e.id }
func (e *Event) HostID() uuid.UUID     { return e.hostID }
func (e *Event) Title() string         { return e.title }
func (e *Event) Description() string   { return e.description }
func (e *Event) Venue() string         { return e.venue }
func (e *Event) StartsAt() time.Time   { return e.startsAt }
func (e *Event) TicketTypes() []string { return e.ticketTypes }
func (e *Event) TotalTickets() int     { return e.totalTickets }
func (e *Event) CreatedAt() time.Time  { return e.createdAt }
func (e *Event) UpdatedAt() time.Time  { return e.updatedAt }

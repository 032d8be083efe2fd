//go:build unit || e2e

package builder

import (
	"time"

	domevent "ticketapp/internal/domain/event"
	reqdto "ticketapp/internal/handler/dto/request"
	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventBuilder struct {
	HostID       uuid.UUID
	Title        string
	Description  string
	Venue        string
	StartsAt     time.Time
	TicketTypes  []string
	TotalTickets int
}

func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		HostID:       uuid.New(),
		Title:        "Test Concert",
		Description:  "An evening of live music",
		Venue:        "City Hall",
		StartsAt:     time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC),
		TicketTypes:  []string{"GENERAL", "VIP"},
		TotalTickets: 100,
	}
}

func (e *EventBuilder) With(mutate func(*EventBuilder)) *EventBuilder {
	mutate(e)
	return e
}

// Build methods
func (e *EventBuilder) BuildDomain() (*domevent.Event, error) {
	return domevent.NewEvent(e.HostID, e.Title, e.Description, e.Venue, e.StartsAt, e.TicketTypes, e.TotalTickets)
}

func (e *EventBuilder) BuildCreateRequestDTO() reqdto.CreateEventRequest {
	description := e.Description
	return reqdto.CreateEventRequest{
		Title:        e.Title,
		Description:  &description,
		Venue:        e.Venue,
		StartsAt:     e.StartsAt,
		TicketTypes:  e.TicketTypes,
		TotalTickets: e.TotalTickets,
	}
}

func (e *EventBuilder) BuildView() *queries.EventView {
	description := e.Description
	return &queries.EventView{
		ID:           uuid.New(),
		HostID:       e.HostID,
		Title:        e.Title,
		Description:  &description,
		Venue:        e.Venue,
		StartsAt:     e.StartsAt,
		TicketTypes:  e.TicketTypes,
		TotalTickets: int32(e.TotalTickets),
		Remaining:    int32(e.TotalTickets),
	}
}

// Fluent builder methods
func (e *EventBuilder) WithHostID(hostID uuid.UUID) *EventBuilder {
	e.HostID = hostID
	return e
}

func (e *EventBuilder) WithTitle(title string) *EventBuilder {
	e.Title = title
	return e
}

func (e *EventBuilder) WithTicketTypes(types ...string) *EventBuilder {
	e.TicketTypes = types
	return e
}

func (e *EventBuilder) WithTotalTickets(total int) *EventBuilder {
	e.TotalTickets = total
	return e
}

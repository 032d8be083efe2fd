package response

import (
	"time"

	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventResponse struct {
	ID           uuid.UUID `json:"id"`
	HostID       uuid.UUID `json:"hostId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Venue        string    `json:"venue"`
	StartsAt     time.Time `json:"startsAt"`
	TicketTypes  []string  `json:"ticketTypes"`
	TotalTickets int32     `json:"totalTickets"`
	Remaining    int32     `json:"remaining"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type EventListResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	StartsAt  time.Time `json:"startsAt"`
	Remaining int32     `json:"remaining"`
}

func FromEventView(rm *queries.EventView) *EventResponse {
	return &EventResponse{
		ID:           rm.ID,
		HostID:       rm.HostID,
		Title:        rm.Title,
		Description:  rm.Description,
		Venue:        rm.Venue,
		StartsAt:     rm.StartsAt,
		TicketTypes:  rm.TicketTypes,
		TotalTickets: rm.TotalTickets,
		Remaining:    rm.Remaining,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromEventListItem(rm *queries.EventListItem) *EventListResponse {
	return &EventListResponse{
		ID:        rm.ID,
		Title:     rm.Title,
		Venue:     rm.Venue,
		StartsAt:  rm.StartsAt,
		Remaining: rm.Remaining,
	}
}

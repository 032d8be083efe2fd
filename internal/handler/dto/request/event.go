package request

import (
	"time"
)

type CreateEventRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  *string   `json:"description,omitempty"`
	Venue        string    `json:"venue" binding:"required"`
	StartsAt     time.Time `json:"startsAt" binding:"required"`
	TicketTypes  []string  `json:"ticketTypes" binding:"required,min=1"`
	TotalTickets int       `json:"totalTickets" binding:"required,min=1"`
}

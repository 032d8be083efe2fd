// Package queue carries ticket issuance over RabbitMQ so a confirmed booking
// never waits on ticket generation.
package queue

import (
	"time"

	"github.com/google/uuid"
)

const TicketIssueQueue = "ticket.issue"

// TicketIssueMessage asks the consumer to mint a ticket for a confirmed
// booking. It carries everything the consumer needs so redeliveries never
// have to consult the primary database.
type TicketIssueMessage struct {
	BookingID   uuid.UUID `json:"booking_id"`
	UserID      uuid.UUID `json:"user_id"`
	EventID     uuid.UUID `json:"event_id"`
	Quantity    int       `json:"quantity"`
	RequestedAt time.Time `json:"requested_at"`
}

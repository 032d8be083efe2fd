package request

import (
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	EventID    uuid.UUID `json:"eventId" binding:"required"`
	TicketType string    `json:"ticketType" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

type ConfirmBookingRequest struct {
	PaymentRef string `json:"paymentRef" binding:"required"`
}

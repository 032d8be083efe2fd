package response

import (
	"time"

	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type TicketResponse struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"bookingId"`
	EventID   uuid.UUID `json:"eventId"`
	QRPayload string    `json:"qrPayload"`
	IssuedAt  time.Time `json:"issuedAt"`
}

func FromTicketView(rm *queries.TicketView) *TicketResponse {
	return &TicketResponse{
		ID:        rm.ID,
		BookingID: rm.BookingID,
		EventID:   rm.EventID,
		QRPayload: rm.QRPayload,
		IssuedAt:  rm.IssuedAt,
	}
}

package response

import (
	"time"

	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	EventID       uuid.UUID  `json:"eventId"`
	EventTitle    string     `json:"eventTitle"`
	TicketType    string     `json:"ticketType"`
	Quantity      int32      `json:"quantity"`
	Status        string     `json:"status"`
	HoldExpiry    *time.Time `json:"holdExpiry,omitempty"`
	PaymentStatus string     `json:"paymentStatus"`
	PaymentRef    *string    `json:"paymentRef,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"eventId"`
	EventTitle    string     `json:"eventTitle"`
	TicketType    string     `json:"ticketType"`
	Quantity      int32      `json:"quantity"`
	Status        string     `json:"status"`
	HoldExpiry    *time.Time `json:"holdExpiry,omitempty"`
	PaymentStatus string     `json:"paymentStatus"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:            rm.ID,
		UserID:        rm.UserID,
		EventID:       rm.EventID,
		EventTitle:    rm.EventTitle,
		TicketType:    rm.TicketType,
		Quantity:      rm.Quantity,
		Status:        rm.Status,
		HoldExpiry:    rm.HoldExpiry,
		PaymentStatus: rm.PaymentStatus,
		PaymentRef:    rm.PaymentRef,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:            rm.ID,
		EventID:       rm.EventID,
		EventTitle:    rm.EventTitle,
		TicketType:    rm.TicketType,
		Quantity:      rm.Quantity,
		Status:        rm.Status,
		HoldExpiry:    rm.HoldExpiry,
		PaymentStatus: rm.PaymentStatus,
		CreatedAt:     rm.CreatedAt,
	}
}

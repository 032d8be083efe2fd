//go:build unit || e2e

package builder

import (
	"time"

	dombooking "ticketapp/internal/domain/booking"
	reqdto "ticketapp/internal/handler/dto/request"
	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID     uuid.UUID
	EventID    uuid.UUID
	EventTitle string
	TicketType string
	Quantity   int
	Now        time.Time
	HoldTTL    time.Duration
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:     uuid.New(),
		EventID:    uuid.New(),
		EventTitle: "Test Concert",
		TicketType: "GENERAL",
		Quantity:   2,
		Now:        time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		HoldTTL:    10 * time.Minute,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewHold(b.UserID, b.EventID, b.TicketType, b.Quantity, b.Now, b.HoldTTL)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		EventID:    b.EventID,
		TicketType: b.TicketType,
		Quantity:   b.Quantity,
	}
}

func (b *BookingBuilder) BuildView(status string) *queries.BookingView {
	expiry := b.Now.Add(b.HoldTTL)
	view := &queries.BookingView{
		ID:            uuid.New(),
		UserID:        b.UserID,
		EventID:       b.EventID,
		EventTitle:    b.EventTitle,
		TicketType:    b.TicketType,
		Quantity:      int32(b.Quantity),
		Status:        status,
		PaymentStatus: "PENDING",
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
	if status == "HOLD" {
		view.HoldExpiry = &expiry
	}
	return view
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithEventID(eventID uuid.UUID) *BookingBuilder {
	b.EventID = eventID
	return b
}

func (b *BookingBuilder) WithTicketType(ticketType string) *BookingBuilder {
	b.TicketType = ticketType
	return b
}

func (b *BookingBuilder) WithQuantity(quantity int) *BookingBuilder {
	b.Quantity = quantity
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) WithHoldTTL(ttl time.Duration) *BookingBuilder {
	b.HoldTTL = ttl
	return b
}

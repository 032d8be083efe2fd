package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	EventID       uuid.UUID  `json:"event_id"`
	EventTitle    string     `json:"event_title"`
	TicketType    string     `json:"ticket_type"`
	Quantity      int32      `json:"quantity"`
	Status        string     `json:"status"`
	HoldExpiry    *time.Time `json:"hold_expiry,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	PaymentRef    *string    `json:"payment_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	EventTitle    string     `json:"event_title"`
	TicketType    string     `json:"ticket_type"`
	Quantity      int32      `json:"quantity"`
	Status        string     `json:"status"`
	HoldExpiry    *time.Time `json:"hold_expiry,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type EventView struct {
	ID           uuid.UUID `json:"id"`
	HostID       uuid.UUID `json:"host_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Venue        string    `json:"venue"`
	StartsAt     time.Time `json:"starts_at"`
	TicketTypes  []string  `json:"ticket_types"`
	TotalTickets int32     `json:"total_tickets"`
	Remaining    int32     `json:"remaining"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type EventListItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	StartsAt  time.Time `json:"starts_at"`
	Remaining int32     `json:"remaining"`
}

type PaymentView struct {
	ID                   uuid.UUID `json:"id"`
	BookingID            uuid.UUID `json:"booking_id"`
	UserID               uuid.UUID `json:"user_id"`
	AmountCents          int64     `json:"amount_cents"`
	Currency             string    `json:"currency"`
	CouponCode           *string   `json:"coupon_code,omitempty"`
	DiscountAppliedCents int64     `json:"discount_applied_cents"`
	ProviderRef          *string   `json:"provider_ref,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type TicketView struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	EventID   uuid.UUID `json:"event_id"`
	QRPayload string    `json:"qr_payload"`
	IssuedAt  time.Time `json:"issued_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrEmptyTicketType   = errors.New("ticket type must not be empty")
	ErrAlreadyFinalized  = errors.New("booking is already finalized")
	ErrHoldNotExpired    = errors.New("hold has not expired")
	ErrEmptyPaymentRef   = errors.New("payment reference must not be empty")
	ErrCancellationDeny  = errors.New("cancellation is not allowed for this booking")
	ErrMissingHoldExpiry = errors.New("hold booking is missing its expiry")
)

// Booking is a buyer's time-bounded claim on event inventory. A booking is
// created as a HOLD with capacity already reserved; confirm, cancel and
// expire move it to a terminal state exactly once. Terminal records are kept
// for history and never mutate again.
type Booking struct {
	id                  uuid.UUID
	userID              uuid.UUID
	eventID             uuid.UUID
	ticketType          string
	quantity            int
	status              Status
	holdExpiry          *time.Time
	paymentStatus       string
	paymentRef          *string
	cancellationAllowed bool
	createdAt           time.Time
	updatedAt           time.Time
}

// NewHold validates the request and produces the initial HOLD record.
// Inventory must already be reserved by the caller; the hold expiry is
// now+ttl and is the only state carrying an expiry.
func NewHold(userID, eventID uuid.UUID, ticketType string, quantity int, now time.Time, ttl time.Duration) (*Booking, error) {
	ticketType = strings.TrimSpace(ticketType)
	if ticketType == "" {
		return nil, ErrEmptyTicketType
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	expiry := now.Add(ttl)
	return &Booking{
		id:                  uuid.New(),
		userID:              userID,
		eventID:             eventID,
		ticketType:          ticketType,
		quantity:            quantity,
		status:              StatusHold,
		holdExpiry:          &expiry,
		paymentStatus:       PaymentPending,
		cancellationAllowed: true,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func Reconstruct(
	id, userID, eventID uuid.UUID,
	ticketType string,
	quantity int,
	status Status,
	holdExpiry *time.Time,
	paymentStatus string,
	paymentRef *string,
	cancellationAllowed bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                  id,
		userID:              userID,
		eventID:             eventID,
		ticketType:          ticketType,
		quantity:            quantity,
		status:              status,
		holdExpiry:          holdExpiry,
		paymentStatus:       paymentStatus,
		paymentRef:          paymentRef,
		cancellationAllowed: cancellationAllowed,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// Confirm moves HOLD to CONFIRMED, clearing the hold expiry and stamping the
// payment outcome. The returned effect asks the caller to dispatch ticket
// issuance after the transition commits.
func (b *Booking) Confirm(paymentRef string, now time.Time) (*Booking, Effect, error) {
	if b.status != StatusHold {
		return nil, EffectNone, ErrAlreadyFinalized
	}
	if strings.TrimSpace(paymentRef) == "" {
		return nil, EffectNone, ErrEmptyPaymentRef
	}

	next := *b
	next.status = StatusConfirmed
	next.holdExpiry = nil
	next.paymentStatus = PaymentSuccess
	next.paymentRef = &paymentRef
	next.updatedAt = now
	return &next, EffectIssueTicket, nil
}

// Cancel moves HOLD to CANCELLED at the buyer's request. The held quantity
// must be released back to inventory by the caller.
func (b *Booking) Cancel(now time.Time) (*Booking, Effect, error) {
	if b.status != StatusHold {
		return nil, EffectNone, ErrAlreadyFinalized
	}
	if !b.cancellationAllowed {
		return nil, EffectNone, ErrCancellationDeny
	}

	next := *b
	next.status = StatusCancelled
	next.holdExpiry = nil
	next.paymentStatus = PaymentCancelled
	next.updatedAt = now
	return &next, EffectReleaseInventory, nil
}

// Expire is the reaper-driven variant of Cancel: it additionally requires
// the hold expiry to be in the past.
func (b *Booking) Expire(now time.Time) (*Booking, Effect, error) {
	if b.status != StatusHold {
		return nil, EffectNone, ErrAlreadyFinalized
	}
	if b.holdExpiry == nil {
		return nil, EffectNone, ErrMissingHoldExpiry
	}
	if !b.holdExpiry.Before(now) {
		return nil, EffectNone, ErrHoldNotExpired
	}

	next := *b
	next.status = StatusCancelled
	next.holdExpiry = nil
	next.paymentStatus = PaymentExpired
	next.updatedAt = now
	return &next, EffectReleaseInventory, nil
}

func (b *Booking) IsHold() bool { return b.status == StatusHold }

func (b *Booking) HasExpired(now time.Time) bool {
	return b.status == StatusHold && b.holdExpiry != nil && b.holdExpiry.Before(now)
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) UserID() uuid.UUID         { return b.userID }
func (b *Booking) EventID() uuid.UUID        { return b.eventID }
func (b *Booking) TicketType() string        { return b.ticketType }
func (b *Booking) Quantity() int             { return b.quantity }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) HoldExpiry() *time.Time    { return b.holdExpiry }
func (b *Booking) PaymentStatus() string     { return b.paymentStatus }
func (b *Booking) PaymentRef() *string       { return b.paymentRef }
func (b *Booking) CancellationAllowed() bool { return b.cancellationAllowed }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

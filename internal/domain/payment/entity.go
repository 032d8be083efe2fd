package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount   = errors.New("amount must not be negative")
	ErrEmptyCurrency   = errors.New("currency must not be empty")
	ErrAlreadyFinal    = errors.New("payment is already final")
	ErrInvalidOutcome  = errors.New("invalid payment outcome")
	ErrEmptyProviderID = errors.New("provider reference must not be empty")
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Record tracks one payment attempt for a booking. At most one record per
// booking reaches SUCCESS; once terminal, provider callbacks are no-ops.
type Record struct {
	id                   uuid.UUID
	bookingID            uuid.UUID
	userID               uuid.UUID
	amountCents          int64
	currency             string
	couponCode           *string
	discountAppliedCents int64
	providerRef          *string
	status               Status
	createdAt            time.Time
	updatedAt            time.Time
}

func NewRecord(bookingID, userID uuid.UUID, amountCents int64, currency string, couponCode *string) (*Record, error) {
	if amountCents < 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		return nil, ErrEmptyCurrency
	}

	return &Record{
		id:          uuid.New(),
		bookingID:   bookingID,
		userID:      userID,
		amountCents: amountCents,
		currency:    currency,
		couponCode:  couponCode,
		status:      StatusPending,
	}, nil
}

func ReconstructRecord(
	id, bookingID, userID uuid.UUID,
	amountCents int64,
	currency string,
	couponCode *string,
	discountAppliedCents int64,
	providerRef *string,
	status Status,
	createdAt, updatedAt time.Time,
) *Record {
	return &Record{
		id:                   id,
		bookingID:            bookingID,
		userID:               userID,
		amountCents:          amountCents,
		currency:             currency,
		couponCode:           couponCode,
		discountAppliedCents: discountAppliedCents,
		providerRef:          providerRef,
		status:               status,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// ApplyCoupon folds the coupon outcome into the record before it is first
// persisted: an instant-success coupon finalizes the record without any
// provider involvement, a discount coupon lowers the amount and leaves the
// record PENDING for the provider flow.
func (r *Record) ApplyCoupon(outcome CouponOutcome, now time.Time) *Record {
	next := *r
	next.amountCents = outcome.AmountCents
	next.discountAppliedCents = outcome.DiscountCents
	if outcome.InstantSuccess {
		ref := outcome.ProviderRef
		next.providerRef = &ref
		next.status = StatusSuccess
	}
	next.updatedAt = now
	return &next
}

// MarkOutcome records the provider's final verdict. Terminal records reject
// further outcomes with ErrAlreadyFinal; callers treat that as a no-op.
func (r *Record) MarkOutcome(providerRef string, status Status, now time.Time) (*Record, error) {
	if r.status.IsTerminal() {
		return nil, ErrAlreadyFinal
	}
	if !status.IsTerminal() {
		return nil, ErrInvalidOutcome
	}
	if providerRef == "" {
		return nil, ErrEmptyProviderID
	}

	next := *r
	next.providerRef = &providerRef
	next.status = status
	next.updatedAt = now
	return &next, nil
}

func (r *Record) ID() uuid.UUID               { return r.id }
func (r *Record) BookingID() uuid.UUID        { return r.bookingID }
func (r *Record) UserID() uuid.UUID           { return r.userID }
func (r *Record) AmountCents() int64          { return r.amountCents }
func (r *Record) Currency() string            { return r.currency }
func (r *Record) CouponCode() *string         { return r.couponCode }
func (r *Record) DiscountAppliedCents() int64 { return r.discountAppliedCents }
func (r *Record) ProviderRef() *string        { return r.providerRef }
func (r *Record) Status() Status              { return r.status }
func (r *Record) CreatedAt() time.Time        { return r.createdAt }
func (r *Record) UpdatedAt() time.Time        { return r.updatedAt }

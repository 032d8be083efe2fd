package response

import (
	"time"

	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID                   uuid.UUID `json:"id"`
	BookingID            uuid.UUID `json:"bookingId"`
	AmountCents          int64     `json:"amountCents"`
	Currency             string    `json:"currency"`
	CouponCode           *string   `json:"couponCode,omitempty"`
	DiscountAppliedCents int64     `json:"discountAppliedCents"`
	ProviderRef          *string   `json:"providerRef,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func FromPaymentView(rm *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:                   rm.ID,
		BookingID:            rm.BookingID,
		AmountCents:          rm.AmountCents,
		Currency:             rm.Currency,
		CouponCode:           rm.CouponCode,
		DiscountAppliedCents: rm.DiscountAppliedCents,
		ProviderRef:          rm.ProviderRef,
		Status:               rm.Status,
		CreatedAt:            rm.CreatedAt,
		UpdatedAt:            rm.UpdatedAt,
	}
}

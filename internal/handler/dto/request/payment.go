package request

import (
	"strings"

	"github.com/google/uuid"
)

type InitiatePaymentRequest struct {
	BookingID   uuid.UUID `json:"bookingId" binding:"required"`
	AmountCents int64     `json:"amountCents" binding:"min=0"`
	Currency    string    `json:"currency" binding:"required,len=3"`
	CouponCode  *string   `json:"couponCode,omitempty"`
}

func (r InitiatePaymentRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type ProviderCallbackRequest struct {
	PaymentID   uuid.UUID `json:"paymentId" binding:"required"`
	ProviderRef string    `json:"providerRef" binding:"required"`
	Status      string    `json:"status" binding:"required,oneof=SUCCESS FAILED"`
}

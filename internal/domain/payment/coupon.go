package payment

import "strings"

// CouponOutcome is the effect of a coupon code on a payment before it is
// handed to the provider. Codes are policy data; the set below mirrors the
// launch promotions and the developer test codes.
type CouponOutcome struct {
	InstantSuccess bool
	ProviderRef    string
	AmountCents    int64
	DiscountCents  int64
}

// EvaluateCoupon normalizes the code and computes its outcome against the
// requested amount. Unknown codes are a plain no-op, not an error: the
// provider flow proceeds at full price.
func EvaluateCoupon(code string, amountCents int64) CouponOutcome {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	switch normalized {
	case "FREE100":
		return CouponOutcome{
			InstantSuccess: true,
			ProviderRef:    "COUPON-FREE100",
			AmountCents:    0,
			DiscountCents:  amountCents,
		}
	case "DEVTEST":
		return CouponOutcome{
			InstantSuccess: true,
			ProviderRef:    "COUPON-DEVTEST",
			AmountCents:    0,
			DiscountCents:  amountCents,
		}
	case "NEWUSER10":
		discount := amountCents / 10
		return CouponOutcome{
			AmountCents:   amountCents - discount,
			DiscountCents: discount,
		}
	default:
		return CouponOutcome{AmountCents: amountCents}
	}
}

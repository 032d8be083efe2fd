package booking

type Status string

const (
	StatusHold      Status = "HOLD"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal statuses admit no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Payment status strings mirrored onto the booking record. PENDING while the
// hold is open; the terminal transition stamps the matching outcome.
const (
	PaymentPending   = "PENDING"
	PaymentSuccess   = "SUCCESS"
	PaymentCancelled = "CANCELLED"
	PaymentExpired   = "EXPIRED"
)

// Effect is the side effect a state transition demands. Transitions are pure;
// the caller performs the effect after the status compare-and-set commits.
type Effect int

const (
	EffectNone Effect = iota
	// EffectReleaseInventory returns the held quantity to the event's pool.
	EffectReleaseInventory
	// EffectIssueTicket requests asynchronous ticket issuance.
	EffectIssueTicket
)

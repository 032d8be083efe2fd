package inventory

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
)

// Counter is the per-event capacity ledger value: consumed never exceeds
// total and never goes negative. The production serialization point is the
// database row; this value type carries the same arithmetic for the memory
// ledger and for tests.
type Counter struct {
	eventID  uuid.UUID
	total    int
	consumed int
}

func NewCounter(eventID uuid.UUID, total int) Counter {
	if total < 0 {
		total = 0
	}
	return Counter{eventID: eventID, total: total}
}

func ReconstructCounter(eventID uuid.UUID, total, consumed int) Counter {
	return Counter{eventID: eventID, total: total, consumed: consumed}
}

// Reserve consumes qty units if they fit, otherwise returns
// ErrInsufficientCapacity and leaves the counter unchanged.
func (c Counter) Reserve(qty int) (Counter, error) {
	if qty <= 0 {
		return c, ErrInvalidQuantity
	}
	if c.consumed+qty > c.total {
		return c, ErrInsufficientCapacity
	}
	c.consumed += qty
	return c, nil
}

// Release returns qty units to the pool, floored at zero. The second return
// reports whether the release was clamped (more released than consumed),
// which callers log as an anomaly.
func (c Counter) Release(qty int) (Counter, bool) {
	if qty <= 0 {
		return c, false
	}
	clamped := qty > c.consumed
	c.consumed -= qty
	if c.consumed < 0 {
		c.consumed = 0
	}
	return c, clamped
}

func (c Counter) EventID() uuid.UUID { return c.eventID }
func (c Counter) Total() int         { return c.total }
func (c Counter) Consumed() int      { return c.consumed }
func (c Counter) Remaining() int     { return c.total - c.consumed }

package shared

import (
	"context"

	"ticketapp/internal/domain/booking"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
)

// Collaborator capabilities. Each collaborator gets its own narrow interface
// with its own timeout and failure policy; there is no shared client
// registry. Failures surface as infra.RepositoryError kinds so callers can
// dispatch on NOT_FOUND / CONFLICT / UNAVAILABLE without knowing the
// transport behind the port.

// InventoryLedger owns the per-event capacity counters. Reserve and Release
// are each a single atomic unit; no caller-side lock spans them.
type InventoryLedger interface {
	// CreateCounter provisions the counter alongside its event, inside the
	// caller's transaction.
	CreateCounter(ctx context.Context, db db.DBTX, eventID uuid.UUID, total int) error
	// Reserve atomically consumes qty units or fails with KindConflict
	// (oversell) / KindNotFound without consuming anything.
	Reserve(ctx context.Context, eventID uuid.UUID, qty int) error
	// Release returns qty units, floored at zero consumed. Over-releases are
	// clamped and logged by the implementation, never an error.
	Release(ctx context.Context, eventID uuid.UUID, qty int) error
}

// EventCacheInvalidator drops cached catalog listings after a write.
type EventCacheInvalidator interface {
	InvalidateList(ctx context.Context) error
}

// TicketIssuer requests issuance of a ticket for a confirmed booking.
// Callers dispatch it fire-and-forget; a returned error means the request
// could not even be handed off.
type TicketIssuer interface {
	IssueTicket(ctx context.Context, b *booking.Booking) error
}

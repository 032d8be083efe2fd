package shared

import (
	"context"

	"ticketapp/internal/domain/booking"
	"ticketapp/internal/domain/event"
	"ticketapp/internal/domain/payment"
	"ticketapp/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single statement operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Events() EventRepository
	Payments() PaymentRepository
	Users() UserRepository
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, db db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// FinalizeFromHold writes a terminal transition with a compare-and-set on
	// status=HOLD. It reports false when the stored record already left HOLD,
	// in which case nothing was written.
	FinalizeFromHold(ctx context.Context, db db.DBTX, b *booking.Booking) (bool, error)
}

type EventRepository interface {
	Create(ctx context.Context, db db.DBTX, e *event.Event) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*event.Event, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, db db.DBTX, rec *payment.Record) error
	FindByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*payment.Record, error)
	// Update persists a terminal outcome with a compare-and-set on
	// status=PENDING, reporting false when the record was already final.
	Update(ctx context.Context, db db.DBTX, rec *payment.Record) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, db db.DBTX, email, passwordHash, role string) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, db db.DBTX, userID uuid.UUID) error
}

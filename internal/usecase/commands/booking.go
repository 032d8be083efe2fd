package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ticketapp/internal/domain/booking"
	"ticketapp/internal/domain/event"
	reqdto "ticketapp/internal/handler/dto/request"
	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/errs"
	"ticketapp/internal/usecase/queries"
	"ticketapp/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound           = errs.New("event not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrUnknownTicketType       = errs.New("unknown ticket type")
	ErrEventSoldOut            = errs.New("event is sold out")
	ErrAlreadyFinalized        = errs.New("booking is already finalized")
	ErrBookingAccessDenied     = errs.New("booking belongs to another user")
	ErrHoldNotExpired          = errs.New("hold has not expired")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrInventoryUnavailable    = errs.New("inventory ledger unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const ticketDispatchTimeout = 5 * time.Second

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, bookingID, actorID uuid.UUID, paymentRef string) (*queries.BookingView, error)
	// ConfirmBookingSystem is the payment-driven variant without an ownership
	// check.
	ConfirmBookingSystem(ctx context.Context, bookingID uuid.UUID, paymentRef string) error
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID) (*queries.BookingView, error)
	// ExpireBooking finalizes one overdue hold. Losing the race to another
	// finalizer is not an error.
	ExpireBooking(ctx context.Context, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	bookingRepo    shared.BookingRepository
	eventRepo      shared.EventRepository
	ledger         shared.InventoryLedger
	issuer         shared.TicketIssuer
	bookingQueries queries.BookingQueries
	db             db.DBTX
	clock          clock.Clock
	holdTTL        time.Duration
}

func NewBookingCommands(
	bookingRepo shared.BookingRepository,
	eventRepo shared.EventRepository,
	ledger shared.InventoryLedger,
	issuer shared.TicketIssuer,
	bookingQueries queries.BookingQueries,
	db db.DBTX,
	clock clock.Clock,
	holdTTL time.Duration,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		ledger:         ledger,
		issuer:         issuer,
		bookingQueries: bookingQueries,
		db:             db,
		clock:          clock,
		holdTTL:        holdTTL,
	}
}

// CreateBooking reserves capacity first and persists the hold second. The
// reserve call is the only gate against oversell; when the insert fails
// afterwards the reservation is compensated with a release.
func (u *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	ev, err := u.validateAndGetEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if err := ev.ValidateTicketType(req.TicketType); err != nil {
		return nil, errs.Mark(err, ErrUnknownTicketType)
	}

	hold, err := booking.NewHold(userID, ev.ID(), req.TicketType, req.Quantity, u.clock.Now(), u.holdTTL)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.ledger.Reserve(ctx, ev.ID(), hold.Quantity()); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, ErrEventSoldOut
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrEventNotFound
		default:
			return nil, errs.Mark(err, ErrInventoryUnavailable)
		}
	}

	if err := u.bookingRepo.Create(ctx, u.db, hold); err != nil {
		u.compensateReserve(ctx, ev.ID(), hold.Quantity())
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookingQueries.GetByIDSystem(ctx, hold.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingCommandsImpl) ConfirmBooking(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
	paymentRef string,
) (*queries.BookingView, error) {
	current, err := u.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID() != actorID {
		return nil, ErrBookingAccessDenied
	}

	if err := u.confirm(ctx, current, paymentRef); err != nil {
		return nil, err
	}

	view, err := u.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingCommandsImpl) ConfirmBookingSystem(ctx context.Context, bookingID uuid.UUID, paymentRef string) error {
	current, err := u.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	return u.confirm(ctx, current, paymentRef)
}

func (u *bookingCommandsImpl) CancelBooking(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
) (*queries.BookingView, error) {
	current, err := u.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID() != actorID {
		return nil, ErrBookingAccessDenied
	}

	next, effect, err := current.Cancel(u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrAlreadyFinalized)
	}

	won, err := u.bookingRepo.FinalizeFromHold(ctx, u.db, next)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !won {
		// Another finalizer got there first; nothing was written.
		return nil, ErrAlreadyFinalized
	}

	u.applyRelease(ctx, next, effect, "cancel")

	view, err := u.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingCommandsImpl) ExpireBooking(ctx context.Context, bookingID uuid.UUID) error {
	current, err := u.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	next, effect, err := current.Expire(u.clock.Now())
	switch {
	case err == nil:
	case errors.Is(err, booking.ErrAlreadyFinalized):
		// Finalized between scan and load. Done.
		return nil
	case errors.Is(err, booking.ErrHoldNotExpired):
		return errs.Mark(err, ErrHoldNotExpired)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}

	won, err := u.bookingRepo.FinalizeFromHold(ctx, u.db, next)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !won {
		return nil
	}

	u.applyRelease(ctx, next, effect, "expire")
	return nil
}

// confirm runs the HOLD to CONFIRMED transition with a compare-and-set and
// dispatches ticket issuance only when this caller won the write.
func (u *bookingCommandsImpl) confirm(ctx context.Context, current *booking.Booking, paymentRef string) error {
	next, effect, err := current.Confirm(paymentRef, u.clock.Now())
	if err != nil {
		if errors.Is(err, booking.ErrAlreadyFinalized) {
			return errs.Mark(err, ErrAlreadyFinalized)
		}
		return errs.Mark(err, ErrDomainValidation)
	}

	won, err := u.bookingRepo.FinalizeFromHold(ctx, u.db, next)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !won {
		return ErrAlreadyFinalized
	}

	if effect == booking.EffectIssueTicket {
		u.dispatchTicket(next)
	}
	return nil
}

func (u *bookingCommandsImpl) validateAndGetEvent(ctx context.Context, eventID uuid.UUID) (*event.Event, error) {
	ev, err := u.eventRepo.FindByID(ctx, u.db, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return ev, nil
}

func (u *bookingCommandsImpl) loadBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := u.bookingRepo.FindByID(ctx, u.db, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

// compensateReserve undoes a reservation whose hold could not be persisted.
func (u *bookingCommandsImpl) compensateReserve(ctx context.Context, eventID uuid.UUID, qty int) {
	if err := u.ledger.Release(ctx, eventID, qty); err != nil {
		slog.Error("compensating release failed, capacity not reclaimed",
			"event_id", eventID, "quantity", qty, "error", err.Error())
	}
}

// applyRelease returns held capacity after a terminal transition committed.
// The booking stays terminal even when the release fails; the gap is logged
// for reconciliation instead of retried.
func (u *bookingCommandsImpl) applyRelease(ctx context.Context, b *booking.Booking, effect booking.Effect, cause string) {
	if effect != booking.EffectReleaseInventory {
		return
	}
	if err := u.ledger.Release(ctx, b.EventID(), b.Quantity()); err != nil {
		slog.Error("inventory release failed after finalize, capacity not reclaimed",
			"booking_id", b.ID(), "event_id", b.EventID(), "quantity", b.Quantity(),
			"cause", cause, "error", err.Error())
	}
}

func (u *bookingCommandsImpl) dispatchTicket(b *booking.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ticketDispatchTimeout)
		defer cancel()
		if err := u.issuer.IssueTicket(ctx, b); err != nil {
			slog.Error("ticket issuance dispatch failed",
				"booking_id", b.ID(), "error", err.Error())
		}
	}()
}

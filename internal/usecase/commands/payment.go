package commands

import (
	"context"
	"errors"
	"log/slog"

	"ticketapp/internal/domain/payment"
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
	ErrPaymentNotFound     = errs.New("payment not found")
	ErrPaymentNotPending   = errs.New("booking is not awaiting payment")
	ErrInvalidPaymentState = errs.New("invalid payment state transition")
)

type PaymentCommands interface {
	InitiatePayment(ctx context.Context, req reqdto.InitiatePaymentRequest, userID uuid.UUID) (*queries.PaymentView, error)
	// HandleProviderCallback applies the provider's verdict. Callbacks for
	// already-final records are acknowledged without effect, so providers can
	// retry freely.
	HandleProviderCallback(ctx context.Context, req reqdto.ProviderCallbackRequest) error
}

type paymentCommandsImpl struct {
	paymentRepo     shared.PaymentRepository
	bookingRepo     shared.BookingRepository
	bookingCommands BookingCommands
	paymentQueries  queries.PaymentQueries
	db              db.DBTX
	clock           clock.Clock
}

func NewPaymentCommands(
	paymentRepo shared.PaymentRepository,
	bookingRepo shared.BookingRepository,
	bookingCommands BookingCommands,
	paymentQueries queries.PaymentQueries,
	db db.DBTX,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		paymentRepo:     paymentRepo,
		bookingRepo:     bookingRepo,
		bookingCommands: bookingCommands,
		paymentQueries:  paymentQueries,
		db:              db,
		clock:           clock,
	}
}

func (u *paymentCommandsImpl) InitiatePayment(
	ctx context.Context,
	req reqdto.InitiatePaymentRequest,
	userID uuid.UUID,
) (*queries.PaymentView, error) {
	b, err := u.bookingRepo.FindByID(ctx, u.db, req.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if b.UserID() != userID {
		return nil, ErrBookingAccessDenied
	}
	if !b.IsHold() {
		return nil, ErrPaymentNotPending
	}

	couponCode := req.GetCouponCode()
	rec, err := payment.NewRecord(b.ID(), userID, req.AmountCents, req.Currency, couponCode)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	code := ""
	if couponCode != nil {
		code = *couponCode
	}
	outcome := payment.EvaluateCoupon(code, req.AmountCents)
	rec = rec.ApplyCoupon(outcome, u.clock.Now())

	if err := u.paymentRepo.Create(ctx, u.db, rec); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Zero-amount coupons settle immediately without any provider round trip.
	if outcome.InstantSuccess {
		u.confirmBookingForPayment(ctx, rec)
	}

	view, err := u.paymentQueries.GetByIDSystem(ctx, rec.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *paymentCommandsImpl) HandleProviderCallback(ctx context.Context, req reqdto.ProviderCallbackRequest) error {
	rec, err := u.paymentRepo.FindByID(ctx, u.db, req.PaymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrPaymentNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	status := payment.Status(req.Status)
	next, err := rec.MarkOutcome(req.ProviderRef, status, u.clock.Now())
	if err != nil {
		if errors.Is(err, payment.ErrAlreadyFinal) {
			slog.Info("provider callback on final payment ignored",
				"payment_id", rec.ID(), "status", rec.Status())
			return nil
		}
		return errs.Mark(err, ErrInvalidPaymentState)
	}

	won, err := u.paymentRepo.Update(ctx, u.db, next)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !won {
		// Raced with another callback; the stored record is final.
		return nil
	}

	if next.Status() == payment.StatusSuccess {
		u.confirmBookingForPayment(ctx, next)
	}
	return nil
}

// confirmBookingForPayment promotes the booking after a successful payment.
// A booking that was cancelled or expired in the meantime leaves an orphaned
// successful payment; that is logged for manual refund, never rolled back.
func (u *paymentCommandsImpl) confirmBookingForPayment(ctx context.Context, rec *payment.Record) {
	ref := ""
	if rec.ProviderRef() != nil {
		ref = *rec.ProviderRef()
	}

	err := u.bookingCommands.ConfirmBookingSystem(ctx, rec.BookingID(), ref)
	if err == nil {
		return
	}
	if errors.Is(err, ErrAlreadyFinalized) || errors.Is(err, ErrBookingNotFound) {
		slog.Error("payment succeeded for a finalized booking, refund required",
			"payment_id", rec.ID(), "booking_id", rec.BookingID(), "provider_ref", ref)
		return
	}
	slog.Error("booking confirmation after payment failed",
		"payment_id", rec.ID(), "booking_id", rec.BookingID(), "error", err.Error())
}

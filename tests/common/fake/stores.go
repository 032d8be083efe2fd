//go:build unit

// Package fake provides in-memory stands-ins for the persistence ports so
// command flows can be exercised without a database. The booking store keeps
// the same compare-and-set semantics as the SQL implementation.
package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"ticketapp/internal/domain/booking"
	"ticketapp/internal/domain/event"
	"ticketapp/internal/domain/inventory"
	"ticketapp/internal/domain/payment"
	"ticketapp/internal/infra"
	"ticketapp/internal/infra/db"
	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]*event.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: map[uuid.UUID]*event.Event{}}
}

func (s *EventStore) Create(_ context.Context, _ db.DBTX, e *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID()] = e
	return nil
}

func (s *EventStore) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, infra.WrapRepoErr("event not found", nil, infra.KindNotFound)
	}
	return e, nil
}

func (s *EventStore) Put(e *event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID()] = e
}

type BookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	events   *EventStore

	CreateErr   error
	FinalizeErr error
}

func NewBookingStore(events *EventStore) *BookingStore {
	return &BookingStore{bookings: map[uuid.UUID]*booking.Booking{}, events: events}
}

func (s *BookingStore) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b
	return nil
}

func (s *BookingStore) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

// FinalizeFromHold mirrors the SQL predicate: the write lands only while the
// stored record is still a HOLD.
func (s *BookingStore) FinalizeFromHold(_ context.Context, _ db.DBTX, next *booking.Booking) (bool, error) {
	if s.FinalizeErr != nil {
		return false, s.FinalizeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.bookings[next.ID()]
	if !ok || current.Status() != booking.StatusHold {
		return false, nil
	}
	s.bookings[next.ID()] = next
	return true, nil
}

func (s *BookingStore) Get(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}

func (s *BookingStore) view(id uuid.UUID) (*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	title := ""
	if s.events != nil {
		if e, ok := s.events.events[b.EventID()]; ok {
			title = e.Title()
		}
	}
	return &queries.BookingView{
		ID:            b.ID(),
		UserID:        b.UserID(),
		EventID:       b.EventID(),
		EventTitle:    title,
		TicketType:    b.TicketType(),
		Quantity:      int32(b.Quantity()),
		Status:        b.Status().String(),
		HoldExpiry:    b.HoldExpiry(),
		PaymentStatus: b.PaymentStatus(),
		PaymentRef:    b.PaymentRef(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}, nil
}

type bookingReadStore struct {
	store *BookingStore
}

// ReadStore adapts the booking store to the read-side interface.
func (s *BookingStore) ReadStore() queries.BookingReadStore {
	return &bookingReadStore{store: s}
}

func (r *bookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return r.store.view(id)
}

func (r *bookingReadStore) FindByUserID(_ context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var items []*queries.BookingListItem
	for _, b := range r.store.bookings {
		if b.UserID() != userID {
			continue
		}
		items = append(items, &queries.BookingListItem{
			ID:            b.ID(),
			EventID:       b.EventID(),
			TicketType:    b.TicketType(),
			Quantity:      int32(b.Quantity()),
			Status:        b.Status().String(),
			HoldExpiry:    b.HoldExpiry(),
			PaymentStatus: b.PaymentStatus(),
			CreatedAt:     b.CreatedAt(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if int32(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *bookingReadStore) FindExpiredHoldIDs(_ context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var expired []*booking.Booking
	for _, b := range r.store.bookings {
		if b.HasExpired(now) {
			expired = append(expired, b)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].HoldExpiry().Before(*expired[j].HoldExpiry()) })

	ids := make([]uuid.UUID, 0, len(expired))
	for _, b := range expired {
		if int32(len(ids)) >= limit {
			break
		}
		ids = append(ids, b.ID())
	}
	return ids, nil
}

type PaymentStore struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*payment.Record

	UpdateErr error
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: map[uuid.UUID]*payment.Record{}}
}

func (s *PaymentStore) Create(_ context.Context, _ db.DBTX, rec *payment.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[rec.ID()] = rec
	return nil
}

func (s *PaymentStore) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*payment.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.payments[id]
	if !ok {
		return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return rec, nil
}

// Update lands only while the stored record is still PENDING.
func (s *PaymentStore) Update(_ context.Context, _ db.DBTX, next *payment.Record) (bool, error) {
	if s.UpdateErr != nil {
		return false, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.payments[next.ID()]
	if !ok || current.Status() != payment.StatusPending {
		return false, nil
	}
	s.payments[next.ID()] = next
	return true, nil
}

func (s *PaymentStore) Get(id uuid.UUID) *payment.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payments[id]
}

type paymentReadStore struct {
	store *PaymentStore
}

func (s *PaymentStore) ReadStore() queries.PaymentReadStore {
	return &paymentReadStore{store: s}
}

func (r *paymentReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.payments[id]
	if !ok {
		return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return paymentView(rec), nil
}

func (r *paymentReadStore) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*queries.PaymentView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var latest *payment.Record
	for _, rec := range r.store.payments {
		if rec.BookingID() != bookingID {
			continue
		}
		if latest == nil || rec.CreatedAt().After(latest.CreatedAt()) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return paymentView(latest), nil
}

func paymentView(rec *payment.Record) *queries.PaymentView {
	return &queries.PaymentView{
		ID:                   rec.ID(),
		BookingID:            rec.BookingID(),
		UserID:               rec.UserID(),
		AmountCents:          rec.AmountCents(),
		Currency:             rec.Currency(),
		CouponCode:           rec.CouponCode(),
		DiscountAppliedCents: rec.DiscountAppliedCents(),
		ProviderRef:          rec.ProviderRef(),
		Status:               string(rec.Status()),
		CreatedAt:            rec.CreatedAt(),
		UpdatedAt:            rec.UpdatedAt(),
	}
}

// Ledger reuses the domain counter arithmetic so reserve and release behave
// exactly like the SQL statements, including the clamp on release.
type Ledger struct {
	mu       sync.Mutex
	counters map[uuid.UUID]inventory.Counter

	ReserveErr error
	ReleaseErr error
}

func NewLedger() *Ledger {
	return &Ledger{counters: map[uuid.UUID]inventory.Counter{}}
}

func (l *Ledger) CreateCounter(_ context.Context, _ db.DBTX, eventID uuid.UUID, total int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counters[eventID] = inventory.NewCounter(eventID, total)
	return nil
}

func (l *Ledger) Reserve(_ context.Context, eventID uuid.UUID, qty int) error {
	if l.ReserveErr != nil {
		return l.ReserveErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.counters[eventID]
	if !ok {
		return infra.WrapRepoErr("inventory counter not found", nil, infra.KindNotFound)
	}
	next, err := c.Reserve(qty)
	if err != nil {
		return infra.WrapRepoErr("insufficient capacity", err, infra.KindConflict)
	}
	l.counters[eventID] = next
	return nil
}

func (l *Ledger) Release(_ context.Context, eventID uuid.UUID, qty int) error {
	if l.ReleaseErr != nil {
		return l.ReleaseErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.counters[eventID]
	if !ok {
		return infra.WrapRepoErr("inventory counter not found", nil, infra.KindNotFound)
	}
	next, _ := c.Release(qty)
	l.counters[eventID] = next
	return nil
}

func (l *Ledger) Counter(eventID uuid.UUID) inventory.Counter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counters[eventID]
}

// Issuer records ticket issuance requests. Issued exposes a channel because
// dispatch happens on a separate goroutine.
type Issuer struct {
	mu      sync.Mutex
	issued  []uuid.UUID
	Issued  chan uuid.UUID
	FailErr error
}

func NewIssuer() *Issuer {
	return &Issuer{Issued: make(chan uuid.UUID, 16)}
}

func (i *Issuer) IssueTicket(_ context.Context, b *booking.Booking) error {
	if i.FailErr != nil {
		return i.FailErr
	}
	i.mu.Lock()
	i.issued = append(i.issued, b.ID())
	i.mu.Unlock()
	i.Issued <- b.ID()
	return nil
}

func (i *Issuer) Count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.issued)
}

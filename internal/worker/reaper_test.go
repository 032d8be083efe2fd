//go:build unit

package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketapp/internal/domain/booking"
	reqdto "ticketapp/internal/handler/dto/request"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/usecase/commands"
	"ticketapp/internal/usecase/queries"
	"ticketapp/internal/worker"
	"ticketapp/tests/common/builder"
	"ticketapp/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const holdTTL = 10 * time.Minute

func TestReaperSweepsExpiredHolds(t *testing.T) {
	events := fake.NewEventStore()
	bookings := fake.NewBookingStore(events)
	ledger := fake.NewLedger()
	issuer := fake.NewIssuer()
	clk := clock.NewMockClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	bookingCommands := commands.NewBookingCommands(
		bookings, events, ledger, issuer,
		queries.NewBookingQueries(bookings.ReadStore()),
		nil, clk, holdTTL,
	)

	ev, err := builder.NewEventBuilder().WithTotalTickets(10).BuildDomain()
	require.NoError(t, err)
	events.Put(ev)
	require.NoError(t, ledger.CreateCounter(context.Background(), nil, ev.ID(), 10))

	createHold := func(qty int) uuid.UUID {
		req := reqdto.CreateBookingRequest{EventID: ev.ID(), TicketType: "GENERAL", Quantity: qty}
		view, err := bookingCommands.CreateBooking(context.Background(), req, uuid.New())
		require.NoError(t, err)
		return view.ID
	}

	expiredA := createHold(2)
	expiredB := createHold(3)

	// A confirmed booking must survive the sweep untouched.
	confirmedID := createHold(1)
	confirmedOwner := bookings.Get(confirmedID).UserID()
	_, err = bookingCommands.ConfirmBooking(context.Background(), confirmedID, confirmedOwner, "pay_abc123")
	require.NoError(t, err)

	clk.Add(holdTTL + time.Second)

	// A fresh hold created after the expiry line stays open.
	freshID := createHold(1)

	reaper := worker.NewReaper(bookingCommands, bookings.ReadStore(), clk, config.BookingConfig{
		HoldTTL:         holdTTL,
		ReaperInterval:  10 * time.Millisecond,
		ReaperBatchSize: 100,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reaper.Run(ctx) }()

	require.Eventually(t, func() bool {
		return bookings.Get(expiredA).Status() == booking.StatusCancelled &&
			bookings.Get(expiredB).Status() == booking.StatusCancelled
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop on cancel")
	}

	assert.Equal(t, booking.StatusConfirmed, bookings.Get(confirmedID).Status())
	assert.Equal(t, booking.StatusHold, bookings.Get(freshID).Status())
	// 2+3 released; the confirmed and fresh holds keep 1 each.
	assert.Equal(t, 2, ledger.Counter(ev.ID()).Consumed())
}

func TestReaperBatchLimit(t *testing.T) {
	events := fake.NewEventStore()
	bookings := fake.NewBookingStore(events)
	ledger := fake.NewLedger()
	clk := clock.NewMockClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	bookingCommands := commands.NewBookingCommands(
		bookings, events, ledger, fake.NewIssuer(),
		queries.NewBookingQueries(bookings.ReadStore()),
		nil, clk, holdTTL,
	)

	ev, err := builder.NewEventBuilder().WithTotalTickets(100).BuildDomain()
	require.NoError(t, err)
	events.Put(ev)
	require.NoError(t, ledger.CreateCounter(context.Background(), nil, ev.ID(), 100))

	for range 5 {
		req := reqdto.CreateBookingRequest{EventID: ev.ID(), TicketType: "GENERAL", Quantity: 1}
		_, err := bookingCommands.CreateBooking(context.Background(), req, uuid.New())
		require.NoError(t, err)
	}
	clk.Add(holdTTL + time.Second)

	// Oldest first, at most batchSize per scan.
	ids, err := bookings.ReadStore().FindExpiredHoldIDs(context.Background(), clk.Now(), 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

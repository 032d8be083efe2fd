// Package worker holds background loops that run beside the API server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/usecase/commands"
	"ticketapp/internal/usecase/queries"
)

// Reaper finalizes holds whose expiry has passed. It is a safety net, not a
// hot path: each sweep scans persisted state, so missed ticks or restarts
// only delay reclamation, never lose it.
type Reaper struct {
	bookings  commands.BookingCommands
	readStore queries.BookingReadStore
	clock     clock.Clock
	interval  time.Duration
	batchSize int32
}

func NewReaper(
	bookings commands.BookingCommands,
	readStore queries.BookingReadStore,
	clock clock.Clock,
	cfg config.BookingConfig,
) *Reaper {
	return &Reaper{
		bookings:  bookings,
		readStore: readStore,
		clock:     clock,
		interval:  cfg.ReaperInterval,
		batchSize: int32(cfg.ReaperBatchSize),
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("hold reaper started", "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("hold reaper stopped")
			return ctx.Err()
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep expires one batch. Failures are isolated per hold so one bad record
// cannot wedge the whole sweep.
func (r *Reaper) sweep(ctx context.Context) {
	now := r.clock.Now()
	ids, err := r.readStore.FindExpiredHoldIDs(ctx, now, r.batchSize)
	if err != nil {
		slog.Error("expired hold scan failed", "error", err.Error())
		return
	}
	if len(ids) == 0 {
		return
	}

	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if err := r.bookings.ExpireBooking(ctx, id); err != nil {
			slog.Error("hold expiration failed", "booking_id", id, "error", err.Error())
			continue
		}
		expired++
	}
	slog.Info("hold sweep finished", "scanned", len(ids), "expired", expired)
}

package components

import (
	"context"
	"errors"
	"log/slog"

	"ticketapp/internal/infra/db"
	"ticketapp/internal/infra/queue"
	"ticketapp/internal/infra/repository"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/usecase/commands"
	"ticketapp/internal/usecase/queries"
	"ticketapp/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewReaper,
		NewTicketConsumer,
	),
	fx.Invoke(
		StartReaper,
		StartTicketConsumer,
	),
)

func NewReaper(
	bookings commands.BookingCommands,
	readStore queries.BookingReadStore,
	clk clock.Clock,
	cfg config.Config,
) *worker.Reaper {
	return worker.NewReaper(bookings, readStore, clk, cfg.Booking)
}

func NewTicketConsumer(
	cfg config.Config,
	tickets *repository.TicketRepository,
	dbtx db.DBTX,
	clk clock.Clock,
) *queue.TicketConsumer {
	return queue.NewTicketConsumer(cfg.Queue, tickets, dbtx, clk)
}

func StartReaper(lc fx.Lifecycle, r *worker.Reaper) {
	runLoop(lc, "reaper", r.Run)
}

func StartTicketConsumer(lc fx.Lifecycle, c *queue.TicketConsumer) {
	runLoop(lc, "ticket consumer", c.Run)
}

// runLoop ties a Run(ctx) loop to the fx lifecycle: started in a goroutine,
// cancelled and drained on shutdown.
func runLoop(lc fx.Lifecycle, name string, run func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("background loop exited", "worker", name, "error", err.Error())
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

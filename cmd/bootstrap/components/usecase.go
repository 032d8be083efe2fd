package components

import (
	"ticketapp/internal/infra/db"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/usecase/commands"
	"ticketapp/internal/usecase/queries"
	"ticketapp/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewEventQueries,
		queries.NewPaymentQueries,
		queries.NewTicketQueries,
		queries.NewUserQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		NewPaymentCommands,
		commands.NewEventCommands,
		commands.NewAuthCommands,
	),
)

func NewBookingCommands(
	bookingRepo shared.BookingRepository,
	eventRepo shared.EventRepository,
	ledger shared.InventoryLedger,
	issuer shared.TicketIssuer,
	bookingQueries queries.BookingQueries,
	dbtx db.DBTX,
	clk clock.Clock,
	cfg config.Config,
) commands.BookingCommands {
	return commands.NewBookingCommands(
		bookingRepo, eventRepo, ledger, issuer, bookingQueries, dbtx, clk, cfg.Booking.HoldTTL,
	)
}

func NewPaymentCommands(
	paymentRepo shared.PaymentRepository,
	bookingRepo shared.BookingRepository,
	bookingCommands commands.BookingCommands,
	paymentQueries queries.PaymentQueries,
	dbtx db.DBTX,
	clk clock.Clock,
) commands.PaymentCommands {
	return commands.NewPaymentCommands(
		paymentRepo, bookingRepo, bookingCommands, paymentQueries, dbtx, clk,
	)
}

package components

import (
	"ticketapp/internal/handler"
	"ticketapp/internal/handler/api"
	"ticketapp/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewEventHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewTicketHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

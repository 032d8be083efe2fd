package commands

import (
	"context"
	"log/slog"

	"ticketapp/internal/domain/event"
	"ticketapp/internal/domain/user"
	reqdto "ticketapp/internal/handler/dto/request"
	"ticketapp/internal/pkg/errs"
	"ticketapp/internal/usecase/queries"
	"ticketapp/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrHostRoleRequired = errs.New("host role required")

type EventCommands interface {
	CreateEvent(ctx context.Context, req reqdto.CreateEventRequest, hostID uuid.UUID, role user.Role) (*queries.EventView, error)
}

type eventCommandsImpl struct {
	uow          shared.UnitOfWork
	ledger       shared.InventoryLedger
	cache        shared.EventCacheInvalidator
	eventQueries queries.EventQueries
}

func NewEventCommands(
	uow shared.UnitOfWork,
	ledger shared.InventoryLedger,
	cache shared.EventCacheInvalidator,
	eventQueries queries.EventQueries,
) EventCommands {
	return &eventCommandsImpl{
		uow:          uow,
		ledger:       ledger,
		cache:        cache,
		eventQueries: eventQueries,
	}
}

// CreateEvent inserts the catalog entry and its inventory counter in one
// transaction so a browsable event always has a counter to reserve against.
func (u *eventCommandsImpl) CreateEvent(
	ctx context.Context,
	req reqdto.CreateEventRequest,
	hostID uuid.UUID,
	role user.Role,
) (*queries.EventView, error) {
	if !role.CanHostEvents() {
		return nil, ErrHostRoleRequired
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	ev, err := event.NewEvent(hostID, req.Title, description, req.Venue, req.StartsAt, req.TicketTypes, req.TotalTickets)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Events().Create(ctx, tx.DB(), ev); err != nil {
			return err
		}
		return u.ledger.CreateCounter(ctx, tx.DB(), ev.ID(), ev.TotalTickets())
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.cache.InvalidateList(ctx); err != nil {
		slog.Warn("event list cache invalidation failed", "error", err.Error())
	}

	view, err := u.eventQueries.GetByID(ctx, ev.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

package components

import (
	"ticketapp/internal/infra/cache"
	"ticketapp/internal/infra/db"
	"ticketapp/internal/infra/queue"
	"ticketapp/internal/infra/readstore"
	"ticketapp/internal/infra/repository"
	"ticketapp/internal/infra/uow"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/usecase/queries"
	"ticketapp/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewTicketReadStore,
			fx.As(new(queries.TicketReadStore)),
		),
		// Event listings go through the Redis read-through layer.
		readstore.NewEventReadStore,
		fx.Annotate(
			NewCachedEventReadStore,
			fx.As(new(queries.EventReadStore)),
			fx.As(new(shared.EventCacheInvalidator)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(shared.BookingRepository)),
		),
		fx.Annotate(
			repository.NewEventRepository,
			fx.As(new(shared.EventRepository)),
		),
		fx.Annotate(
			repository.NewPaymentRepository,
			fx.As(new(shared.PaymentRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
		repository.NewTicketRepository,
		fx.Annotate(
			repository.NewInventoryLedger,
			fx.As(new(shared.InventoryLedger)),
		),
		fx.Annotate(
			NewTicketIssuer,
			fx.As(new(shared.TicketIssuer)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCachedEventReadStore(inner *readstore.EventReadStore, rdb *redis.Client, cfg config.Config) *cache.CachedEventReadStore {
	return cache.NewCachedEventReadStore(inner, rdb, cfg.Cache)
}

func NewTicketIssuer(pub *queue.Publisher) *queue.Publisher {
	return pub
}

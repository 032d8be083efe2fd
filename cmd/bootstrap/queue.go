package bootstrap

import (
	"context"

	"ticketapp/internal/infra/cache"
	"ticketapp/internal/infra/queue"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		NewPublisher,
	),
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (*queue.Publisher, error) {
	pub, cleanup, err := queue.NewPublisher(cfg.Queue, clk)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pub, nil
}

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := cache.NewRedisClient(cfg.Cache)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, nil
}

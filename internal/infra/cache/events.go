// Package cache adds a Redis read-through layer over the event catalog.
// Listings are hot and tolerate short staleness; everything else reads the
// database directly.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ticketapp/internal/pkg/config"
	"ticketapp/internal/pkg/errs"
	"ticketapp/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const eventListKeyPrefix = "events:upcoming:"

func NewRedisClient(cfg config.CacheConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// CachedEventReadStore decorates the database-backed store. Cache failures
// degrade to direct reads; they never fail the request.
type CachedEventReadStore struct {
	inner queries.EventReadStore
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedEventReadStore(inner queries.EventReadStore, rdb *redis.Client, cfg config.CacheConfig) *CachedEventReadStore {
	return &CachedEventReadStore{
		inner: inner,
		rdb:   rdb,
		ttl:   cfg.EventTTL,
	}
}

// FindByID bypasses the cache: the remaining count moves with every booking.
func (s *CachedEventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EventView, error) {
	return s.inner.FindByID(ctx, id)
}

func (s *CachedEventReadStore) FindUpcoming(ctx context.Context, limit int32) ([]*queries.EventListItem, error) {
	key := fmt.Sprintf("%s%d", eventListKeyPrefix, limit)

	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var items []*queries.EventListItem
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		slog.Warn("corrupt event list cache entry, rereading", "key", key)
	} else if err != redis.Nil {
		slog.Warn("event list cache read failed", "error", err.Error())
	}

	items, err := s.inner.FindUpcoming(ctx, limit)
	if err != nil {
		return nil, err
	}

	if body, marshalErr := json.Marshal(items); marshalErr == nil {
		if setErr := s.rdb.Set(ctx, key, body, s.ttl).Err(); setErr != nil {
			slog.Warn("event list cache write failed", "error", setErr.Error())
		}
	}
	return items, nil
}

// InvalidateList drops all cached listings after a catalog write.
func (s *CachedEventReadStore) InvalidateList(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, eventListKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return errs.Wrap(err, "failed to delete cache key")
		}
	}
	if err := iter.Err(); err != nil {
		return errs.Wrap(err, "failed to scan cache keys")
	}
	return nil
}

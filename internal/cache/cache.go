package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
)

// Cache stores JSON encoded values. A miss is reported as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

const (
	ProductKeyPrefix = "product"
	// ProductListKey holds the whole catalog as returned by the list endpoint.
	ProductListKey = "product:all"
)

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// GetOrLoad reads key from c, falling back to load on a miss or a cache
// failure. Loaded values are written back with ttl; write failures are
// logged and otherwise ignored.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	logger := middleware.LoggerFromContext(ctx)

	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cache read failed, loading from source", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return value, nil
}

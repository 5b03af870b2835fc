package cache

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _ Cache = (*InstrumentedCache)(nil)

// InstrumentedCache counts hits and misses of the wrapped cache, labelled
// with the cache name.
type InstrumentedCache struct {
	Cache
	requests metric.Int64Counter
	loads    loadGroup
	hit      metric.MeasurementOption
	miss     metric.MeasurementOption
}

func WithMetrics(c Cache, name string) Cache {
	requests, err := otel.GetMeterProvider().Meter("upkeep-server").Int64Counter(
		"upkeep_server.cache.requests",
		metric.WithDescription("Cache lookups by result"),
	)
	if err != nil {
		slog.Warn("cache metrics disabled", slog.String("cache", name), slog.String("error", err.Error()))
		return c
	}

	cacheName := attribute.String("cache", name)
	return &InstrumentedCache{
		Cache:    c,
		requests: requests,
		hit:      metric.WithAttributes(cacheName, attribute.String("result", "hit")),
		miss:     metric.WithAttributes(cacheName, attribute.String("result", "miss")),
	}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, found := c.Cache.Get(ctx, key)
	if found {
		c.requests.Add(ctx, 1, c.hit)
	} else {
		c.requests.Add(ctx, 1, c.miss)
	}
	return value, found
}

func (c *InstrumentedCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() ([]byte, error)) ([]byte, error) {
	return c.loads.load(ctx, c, key, ttl, loader)
}

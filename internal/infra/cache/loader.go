package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// loadGroup collapses concurrent misses of one key into a single loader
// call and stores its result in the owning cache.
type loadGroup struct {
	flight singleflight.Group
}

func (g *loadGroup) load(ctx context.Context, c Cache, key string, ttl time.Duration, loader func() ([]byte, error)) ([]byte, error) {
	if value, found := c.Get(ctx, key); found {
		return value, nil
	}

	value, err, _ := g.flight.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// another flight may have stored it between the miss and Do
		if value, found := c.Get(ctx, key); found {
			return value, nil
		}

		value, err := loader()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

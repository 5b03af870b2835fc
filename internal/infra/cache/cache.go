package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache stores opaque byte payloads with a TTL. Callers own the encoding.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() ([]byte, error)) ([]byte, error)
}

var _ Cache = (*RistrettoCache)(nil)

type RistrettoCache struct {
	store  *ristretto.Cache
	loads  loadGroup
	config *CacheConfig
}

type CacheConfig struct {
	// MaxCost bounds the total payload size in bytes.
	MaxCost     int64
	NumCounters int64
	BufferItems int64
}

func DefaultConfig() *CacheConfig {
	return &CacheConfig{
		MaxCost:     64 << 20,
		NumCounters: 1e6,
		BufferItems: 64,
	}
}

func New(config *CacheConfig) (*RistrettoCache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{
		store:  store,
		config: config,
	}, nil
}

func (c *RistrettoCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	payload, ok := value.([]byte)
	return payload, ok
}

// Set writes through the ristretto buffers before returning so a following
// Get observes the value.
func (c *RistrettoCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}

	ok := c.store.SetWithTTL(key, value, int64(len(value))+1, ttl)
	c.store.Wait()
	return ok
}

func (c *RistrettoCache) Delete(ctx context.Context, key string) {
	if ctx.Err() != nil {
		return
	}
	c.store.Del(key)
}

// GetOrSet loads a missing key once even when many callers ask for it at
// the same time.
func (c *RistrettoCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() ([]byte, error)) ([]byte, error) {
	return c.loads.load(ctx, c, key, ttl, loader)
}

func (c *RistrettoCache) Close() {
	c.store.Close()
}

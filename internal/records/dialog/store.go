package dialog

import (
	"context"
	"errors"
	"time"

	"upkeep-server/internal/infra/cache"
)

var (
	ErrSessionNotFound = errors.New("dialog session not found")
	ErrSessionNotSaved = errors.New("dialog session could not be saved")
)

const _sessionKeyPrefix = "dialog:"

// Store keeps dialog snapshots between requests.
type Store interface {
	Save(ctx context.Context, id string, s Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string)
}

type CacheStore struct {
	cache cache.Cache
	ttl   time.Duration
}

var _ Store = (*CacheStore)(nil)

func NewCacheStore(c cache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl}
}

func (s *CacheStore) Save(ctx context.Context, id string, snapshot Snapshot) error {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if !s.cache.Set(ctx, _sessionKeyPrefix+id, data, s.ttl) {
		return ErrSessionNotSaved
	}
	return nil
}

func (s *CacheStore) Load(ctx context.Context, id string) (Snapshot, error) {
	data, found := s.cache.Get(ctx, _sessionKeyPrefix+id)
	if !found {
		return Snapshot{}, ErrSessionNotFound
	}
	return DecodeSnapshot(data)
}

func (s *CacheStore) Delete(ctx context.Context, id string) {
	s.cache.Delete(ctx, _sessionKeyPrefix+id)
}

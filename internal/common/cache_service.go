package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache used when Redis is not configured
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	return &CacheService{cache: cache.New(defaultExpiration, cleanUpInterval)}
}

func (cs *CacheService) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value %s: %w", key, err)
	}
	cs.cache.Set(key, data, ttl)
	return nil
}

func (cs *CacheService) Get(_ context.Context, key string, dest any) (bool, error) {
	val, found := cs.cache.Get(key)
	if !found {
		return false, nil
	}
	data, ok := val.([]byte)
	if !ok {
		return false, fmt.Errorf("cache value %s has type %T", key, val)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal cache value %s: %w", key, err)
	}
	return true, nil
}

func (cs *CacheService) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		cs.cache.Delete(k)
	}
	return nil
}

func (cs *CacheService) Ping(context.Context) error {
	return nil
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}

// ItemCount is the number of cached entries, including expired ones not yet
// cleaned up.
func (cs *CacheService) ItemCount() int {
	return cs.cache.ItemCount()
}

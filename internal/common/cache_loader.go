package common

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flightdesk/airline/internal/logging"

	"golang.org/x/sync/singleflight"
)

// CacheLoader is a read-through helper. Concurrent misses on the same key
// share one load. A load only populates the cache if no invalidation of its
// key happened while it ran.
type CacheLoader struct {
	cache CacheInterface
	ttl   time.Duration
	group singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCacheLoader(cache CacheInterface, ttl time.Duration) *CacheLoader {
	return &CacheLoader{cache: cache, ttl: ttl, generations: make(map[string]uint64)}
}

func (l *CacheLoader) generation(key string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[key]
}

// setIfCurrent writes value unless key was invalidated after gen was read.
func (l *CacheLoader) setIfCurrent(ctx context.Context, key string, gen uint64, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generations[key] != gen {
		logging.Debug("Skipping cache write for invalidated key", "key", key)
		return
	}
	if err := l.cache.Set(ctx, key, value, l.ttl); err != nil {
		logging.Warn("Cache write failed", "key", key, "error", err.Error())
	}
}

// Invalidate drops keys. Failures are logged; the entry then expires by TTL.
func (l *CacheLoader) Invalidate(ctx context.Context, keys ...string) {
	if l == nil || l.cache == nil || len(keys) == 0 {
		return
	}
	l.mu.Lock()
	for _, k := range keys {
		l.generations[k]++
		l.group.Forget(k)
	}
	l.mu.Unlock()
	if err := l.cache.Delete(ctx, keys...); err != nil {
		logging.Warn("Cache invalidation failed", "keys", keys, "error", err.Error())
	}
}

// Load returns the cached value for key or runs loader and caches its result.
// hit reports whether the value came from the cache.
func Load[T any](ctx context.Context, l *CacheLoader, key string, loader func(context.Context) (T, error)) (T, bool, error) {
	var out T
	if l == nil || l.cache == nil {
		v, err := loader(ctx)
		return v, false, err
	}

	found, err := l.cache.Get(ctx, key, &out)
	if err != nil {
		logging.Warn("Cache read failed", "key", key, "error", err.Error())
	}
	if found {
		return out, true, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		gen := l.generation(key)
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		l.setIfCurrent(ctx, key, gen, loaded)
		return loaded, nil
	})
	if err != nil {
		return out, false, err
	}
	typed, ok := v.(T)
	if !ok {
		return out, false, fmt.Errorf("cache loader for %s returned %T", key, v)
	}
	return typed, false, nil
}

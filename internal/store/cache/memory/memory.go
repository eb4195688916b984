package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nulzo/prompt-optimizer-api/internal/store/cache"
)

type item struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is the run-scoped default backend: unbounded, never persisted,
// gone when the process exits. Entry volume is bounded by the target × prompt
// matrix of a run, so there is no eviction.
type MemoryCache struct {
	items map[string]item
	mu    sync.RWMutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]item),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		return cache.ErrCacheMiss
	}

	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		return cache.ErrCacheMiss
	}

	return json.Unmarshal(item.value, dest)
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := item{value: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.items[key] = entry
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

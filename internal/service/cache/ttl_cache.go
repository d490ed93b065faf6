package cache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	b   []byte
	exp time.Time
}

// MemoryCache is the in-process fallback when Redis is disabled. Entries
// expire lazily on read.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]memEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]memEntry)}
}

func (c *MemoryCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.b, true, nil
}

func (c *MemoryCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = memEntry{b: value, exp: exp}
	c.mu.Unlock()
	return nil
}

var _ BytesCache = (*MemoryCache)(nil)

// Package pricefeed fetches the token's USD price through an injectable
// TTL cache. The cache is a collaborator owned by the composition root, not
// process-wide state, so the feed stays testable without clock mocking.
package pricefeed

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// Cache is the get/set-with-TTL capability the feed reads through.
type Cache interface {
	// Get returns the cached value and whether a live entry existed.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a value that expires after ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryCache is the in-process Cache backend used when no redis is
// deployed alongside the service.
type MemoryCache struct {
	entries *xsync.Map[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: xsync.NewMap[string, memoryEntry](),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	entry, ok := c.entries.Load(key)
	if !ok {
		return "", false, nil
	}
	if c.now().After(entry.expires) {
		c.entries.Delete(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.entries.Store(key, memoryEntry{value: value, expires: c.now().Add(ttl)})
	return nil
}

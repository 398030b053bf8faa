// Package cache holds the storefront's in-process and Redis-backed caches.
package cache

import (
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const DefaultMetadataTTL = 5 * time.Minute

// ── Filter metadata cache ────────────────────────────────────────────────────
// Stores brands, category tree, rating buckets and price range.
// GetFilterMetadata reads from this before touching the provider.

type metadataEntry struct {
	data      models.FilterMetadata
	fetchedAt time.Time
}

type MetadataCache struct {
	mu    sync.RWMutex
	entry *metadataEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMetadataCache(ttl time.Duration) *MetadataCache {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &MetadataCache{ttl: ttl, now: time.Now}
}

func (c *MetadataCache) Get() (models.FilterMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry != nil && c.now().Sub(c.entry.fetchedAt) < c.ttl {
		return c.entry.data, true
	}
	return models.FilterMetadata{}, false
}

func (c *MetadataCache) Set(data models.FilterMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &metadataEntry{data: data, fetchedAt: c.now()}
}

// ── Invalidate (call after reseeding the catalog) ────────────────────────────

func (c *MetadataCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

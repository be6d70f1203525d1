package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pazsp/lifefinder/internal/model"
)

// Snapshot is one immutable enriched catalog load. Records are never mutated
// in place; a refresh replaces the whole snapshot.
type Snapshot struct {
	Groups   []model.Group
	LoadedAt time.Time
	Err      error
}

// Cache shares one catalog snapshot process-wide for a TTL window. Refresh
// is an atomic pointer swap, so readers never block; only concurrent
// refreshes serialize on the mutex. Failed loads are returned but not
// cached, so the next caller retries the source.
type Cache struct {
	loader *Loader
	ttl    time.Duration
	snap   atomic.Pointer[Snapshot]
	mu     sync.Mutex
}

func NewCache(loader *Loader, ttl time.Duration) *Cache {
	return &Cache{loader: loader, ttl: ttl}
}

// Get returns the current snapshot, loading the catalog if none exists or
// the TTL window has expired. opts hooks only fire on an actual load.
func (c *Cache) Get(ctx context.Context, opts *LoadOptions) *Snapshot {
	if s := c.snap.Load(); s != nil && time.Since(s.LoadedAt) < c.ttl {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited.
	if s := c.snap.Load(); s != nil && time.Since(s.LoadedAt) < c.ttl {
		return s
	}

	groups, err := c.loader.Load(ctx, opts)
	s := &Snapshot{Groups: groups, LoadedAt: time.Now(), Err: err}
	if err == nil {
		c.snap.Store(s)
	}
	return s
}

// Cached returns the current snapshot without loading, or nil if there is
// none or it has expired.
func (c *Cache) Cached() *Snapshot {
	if s := c.snap.Load(); s != nil && time.Since(s.LoadedAt) < c.ttl {
		return s
	}
	return nil
}

// Invalidate drops the cached snapshot, forcing the next Get to reload.
func (c *Cache) Invalidate() {
	c.snap.Store(nil)
}

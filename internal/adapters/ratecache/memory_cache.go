package ratecache

import (
	"context"
	"sync"
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
)

// MemoryCache keeps the tables of the current and the latest day in process memory.
// Older days are dropped on Set since only today's key and Latest are ever read.
type MemoryCache struct {
	mu       sync.RWMutex
	byDay    map[string]*domain.RateTable
	latest   *domain.RateTable
	latestAt time.Time
}

var _ portsrepo.RateCache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{byDay: make(map[string]*domain.RateTable)}
}

func (c *MemoryCache) Get(_ context.Context, dayKey string) (*domain.RateTable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byDay[dayKey]
	if !ok {
		return nil, portsrepo.ErrCacheMiss
	}
	return t.Clone(), nil
}

func (c *MemoryCache) Set(_ context.Context, dayKey string, table *domain.RateTable, observedAt time.Time) error {
	stored := table.Clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byDay = map[string]*domain.RateTable{dayKey: stored}
	if c.latest == nil || !observedAt.Before(c.latestAt) {
		c.latest = stored
		c.latestAt = observedAt
	}
	return nil
}

func (c *MemoryCache) Latest(_ context.Context) (*domain.RateTable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return nil, portsrepo.ErrCacheMiss
	}
	return c.latest.Clone(), nil
}

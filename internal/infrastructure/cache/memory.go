package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type cacheKey struct {
	tenantID   uuid.UUID
	collection Collection
}

// MemoryCache is an in-process CollectionCache
type MemoryCache struct {
	mu          sync.RWMutex
	entries     map[cacheKey]any
	subscribers map[int]Subscriber
	nextSubID   int
}

var _ CollectionCache = (*MemoryCache)(nil)

// NewMemoryCache creates an in-memory collection cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:     make(map[cacheKey]any),
		subscribers: make(map[int]Subscriber),
	}
}

// Get returns the cached value for a collection
func (c *MemoryCache) Get(_ context.Context, tenantID uuid.UUID, collection Collection) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey{tenantID, collection}]
	return v, ok
}

// Set stores a value for a collection
func (c *MemoryCache) Set(_ context.Context, tenantID uuid.UUID, collection Collection, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{tenantID, collection}] = value
}

// Invalidate drops the cached collections and notifies subscribers
func (c *MemoryCache) Invalidate(_ context.Context, tenantID uuid.UUID, collections ...Collection) {
	c.mu.Lock()
	subs := make([]Subscriber, 0, len(c.subscribers))
	for _, s := range c.subscribers {
		subs = append(subs, s)
	}
	for _, col := range collections {
		delete(c.entries, cacheKey{tenantID, col})
	}
	c.mu.Unlock()

	for _, s := range subs {
		for _, col := range collections {
			s(tenantID, col)
		}
	}
}

// Subscribe registers a subscriber for invalidation notifications
func (c *MemoryCache) Subscribe(subscriber Subscriber) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = subscriber
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

package cache

import (
	"context"

	"github.com/google/uuid"
)

// Collection is a typed cache key naming an entity collection
type Collection string

// Cached collections
const (
	CollectionOpportunities Collection = "opportunities"
	CollectionCalls         Collection = "calls"
	CollectionSalespeople   Collection = "salespeople"
	CollectionLeadSources   Collection = "lead_sources"
	CollectionPipelines     Collection = "pipelines"
)

// Subscriber is notified when a collection is invalidated
type Subscriber func(tenantID uuid.UUID, collection Collection)

// CollectionCache caches entity collections per tenant. Mutations
// invalidate the affected collections; subscribers refetch on
// invalidation. This is the sole consistency mechanism between writers
// and cached readers (eventual, not transactional).
type CollectionCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, collection Collection) (any, bool)
	Set(ctx context.Context, tenantID uuid.UUID, collection Collection, value any)
	Invalidate(ctx context.Context, tenantID uuid.UUID, collections ...Collection)
	// Subscribe registers a subscriber and returns an unsubscribe func
	Subscribe(subscriber Subscriber) func()
}

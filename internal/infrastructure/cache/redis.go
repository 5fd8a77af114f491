package cache

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const invalidationChannel = "crm:cache:invalidate"

// RedisCache keeps collection values in process memory and fans
// invalidations out to every instance through redis pub/sub, so a write
// on one instance drops the cached collection everywhere.
type RedisCache struct {
	local  *MemoryCache
	client *redis.Client
	logger *zap.Logger
	cancel context.CancelFunc
}

var _ CollectionCache = (*RedisCache)(nil)

// NewRedisCache creates a redis-backed collection cache and starts the
// invalidation listener
func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &RedisCache{
		local:  NewMemoryCache(),
		client: client,
		logger: logger,
		cancel: cancel,
	}
	go c.listen(ctx)
	return c
}

// Get returns the locally cached value for a collection
func (c *RedisCache) Get(ctx context.Context, tenantID uuid.UUID, collection Collection) (any, bool) {
	return c.local.Get(ctx, tenantID, collection)
}

// Set stores a value in the local cache
func (c *RedisCache) Set(ctx context.Context, tenantID uuid.UUID, collection Collection, value any) {
	c.local.Set(ctx, tenantID, collection, value)
}

// Invalidate drops the collections locally and publishes the
// invalidation so other instances drop them too
func (c *RedisCache) Invalidate(ctx context.Context, tenantID uuid.UUID, collections ...Collection) {
	c.local.Invalidate(ctx, tenantID, collections...)
	for _, col := range collections {
		payload := tenantID.String() + ":" + string(col)
		if err := c.client.Publish(ctx, invalidationChannel, payload).Err(); err != nil {
			c.logger.Warn("failed to publish cache invalidation",
				zap.String("collection", string(col)),
				zap.Error(err))
		}
	}
}

// Subscribe registers a subscriber for invalidation notifications
func (c *RedisCache) Subscribe(subscriber Subscriber) func() {
	return c.local.Subscribe(subscriber)
}

// Close stops the invalidation listener
func (c *RedisCache) Close() {
	c.cancel()
}

func (c *RedisCache) listen(ctx context.Context) {
	sub := c.client.Subscribe(ctx, invalidationChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			tenantID, collection, ok := parseInvalidation(msg.Payload)
			if !ok {
				c.logger.Warn("malformed cache invalidation message", zap.String("payload", msg.Payload))
				continue
			}
			c.local.Invalidate(ctx, tenantID, collection)
		}
	}
}

func parseInvalidation(payload string) (uuid.UUID, Collection, bool) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return uuid.Nil, "", false
	}
	tenantID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, "", false
	}
	return tenantID, Collection(parts[1]), true
}

package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	tenantID := uuid.New()

	_, ok := c.Get(ctx, tenantID, CollectionOpportunities)
	assert.False(t, ok)

	c.Set(ctx, tenantID, CollectionOpportunities, []string{"a", "b"})
	v, ok := c.Get(ctx, tenantID, CollectionOpportunities)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	// other tenants see nothing
	_, ok = c.Get(ctx, uuid.New(), CollectionOpportunities)
	assert.False(t, ok)
}

func TestMemoryCache_Invalidate(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	tenantID := uuid.New()

	c.Set(ctx, tenantID, CollectionOpportunities, 1)
	c.Set(ctx, tenantID, CollectionCalls, 2)
	c.Set(ctx, tenantID, CollectionPipelines, 3)

	c.Invalidate(ctx, tenantID, CollectionOpportunities, CollectionCalls)

	_, ok := c.Get(ctx, tenantID, CollectionOpportunities)
	assert.False(t, ok)
	_, ok = c.Get(ctx, tenantID, CollectionCalls)
	assert.False(t, ok)
	_, ok = c.Get(ctx, tenantID, CollectionPipelines)
	assert.True(t, ok, "untouched collections survive")
}

func TestMemoryCache_Subscribe(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	tenantID := uuid.New()

	var notified []Collection
	unsubscribe := c.Subscribe(func(tid uuid.UUID, col Collection) {
		assert.Equal(t, tenantID, tid)
		notified = append(notified, col)
	})

	c.Invalidate(ctx, tenantID, CollectionCalls)
	require.Equal(t, []Collection{CollectionCalls}, notified)

	unsubscribe()
	c.Invalidate(ctx, tenantID, CollectionCalls)
	assert.Len(t, notified, 1, "no notification after unsubscribe")
}

func TestParseInvalidation(t *testing.T) {
	tenantID := uuid.New()

	tid, col, ok := parseInvalidation(tenantID.String() + ":opportunities")
	require.True(t, ok)
	assert.Equal(t, tenantID, tid)
	assert.Equal(t, CollectionOpportunities, col)

	_, _, ok = parseInvalidation("garbage")
	assert.False(t, ok)

	_, _, ok = parseInvalidation("not-a-uuid:opportunities")
	assert.False(t, ok)
}

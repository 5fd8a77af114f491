package crm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

func newTestOpportunity(t *testing.T, tenantID uuid.UUID) *crm.Opportunity {
	t.Helper()
	opp, err := crm.NewOpportunity(tenantID, "Acme expansion", "Website", decimal.NewFromInt(50000), decimal.Zero)
	require.NoError(t, err)
	return opp
}

func TestOpportunityService_Create(t *testing.T) {
	repo := new(MockOpportunityRepository)
	svc := NewOpportunityService(repo, cache.NewMemoryCache())
	tenantID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Opportunity")).Return(nil)

	revenue := decimal.NewFromInt(50000)
	resp, err := svc.Create(context.Background(), tenantID, CreateOpportunityRequest{
		Name:       "Acme expansion",
		LeadSource: "Website",
		Revenue:    &revenue,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme expansion", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, resp.Revenue.Equal(revenue))
	assert.True(t, resp.CashCollected.IsZero())
	repo.AssertExpectations(t)
}

func TestOpportunityService_Create_InvalidRevenue(t *testing.T) {
	repo := new(MockOpportunityRepository)
	svc := NewOpportunityService(repo, cache.NewMemoryCache())

	revenue := decimal.NewFromInt(-1)
	_, err := svc.Create(context.Background(), uuid.New(), CreateOpportunityRequest{
		Name:    "Bad deal",
		Revenue: &revenue,
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestOpportunityService_Create_InvalidatesCache(t *testing.T) {
	repo := new(MockOpportunityRepository)
	c := cache.NewMemoryCache()
	svc := NewOpportunityService(repo, c)
	tenantID := uuid.New()
	ctx := context.Background()

	c.Set(ctx, tenantID, cache.CollectionOpportunities, "stale")
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(ctx, tenantID, CreateOpportunityRequest{Name: "Deal"})
	require.NoError(t, err)

	_, ok := c.Get(ctx, tenantID, cache.CollectionOpportunities)
	assert.False(t, ok, "mutation drops the cached collection")
}

func TestOpportunityService_Win(t *testing.T) {
	repo := new(MockOpportunityRepository)
	svc := NewOpportunityService(repo, cache.NewMemoryCache())
	tenantID := uuid.New()
	opp := newTestOpportunity(t, tenantID)

	repo.On("FindByID", mock.Anything, tenantID, opp.ID).Return(opp, nil)
	repo.On("Save", mock.Anything, opp).Return(nil)

	resp, err := svc.Win(context.Background(), tenantID, opp.ID)

	require.NoError(t, err)
	assert.Equal(t, "won", resp.Status)
	assert.NotNil(t, resp.LastInteractionAt)
	repo.AssertExpectations(t)
}

func TestOpportunityService_Win_NotFound(t *testing.T) {
	repo := new(MockOpportunityRepository)
	svc := NewOpportunityService(repo, cache.NewMemoryCache())
	tenantID := uuid.New()
	oppID := uuid.New()

	repo.On("FindByID", mock.Anything, tenantID, oppID).Return(nil, shared.ErrNotFound)

	_, err := svc.Win(context.Background(), tenantID, oppID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOpportunityService_Update_Partial(t *testing.T) {
	repo := new(MockOpportunityRepository)
	svc := NewOpportunityService(repo, cache.NewMemoryCache())
	tenantID := uuid.New()
	opp := newTestOpportunity(t, tenantID)

	repo.On("FindByID", mock.Anything, tenantID, opp.ID).Return(opp, nil)
	repo.On("Save", mock.Anything, opp).Return(nil)

	cash := decimal.NewFromInt(10000)
	resp, err := svc.Update(context.Background(), tenantID, opp.ID, UpdateOpportunityRequest{
		CashCollected: &cash,
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme expansion", resp.Name, "unspecified fields keep their values")
	assert.True(t, resp.CashCollected.Equal(cash))
}

func TestOpportunityService_MoveStage(t *testing.T) {
	repo := new(MockOpportunityRepository)
	c := cache.NewMemoryCache()
	svc := NewOpportunityService(repo, c)
	tenantID := uuid.New()
	opp := newTestOpportunity(t, tenantID)
	stageID := uuid.New()
	ctx := context.Background()

	c.Set(ctx, tenantID, cache.CollectionOpportunities, "stale")

	repo.On("MoveToStage", mock.Anything, tenantID, opp.ID, stageID).Return(nil)
	repo.On("FindByID", mock.Anything, tenantID, opp.ID).Return(opp, nil)

	_, err := svc.MoveStage(ctx, tenantID, opp.ID, MoveStageRequest{StageID: stageID})
	require.NoError(t, err)

	_, ok := c.Get(ctx, tenantID, cache.CollectionOpportunities)
	assert.False(t, ok)
	repo.AssertExpectations(t)
}

func TestOpportunityService_Delete(t *testing.T) {
	repo := new(MockOpportunityRepository)
	svc := NewOpportunityService(repo, cache.NewMemoryCache())
	tenantID := uuid.New()
	opp := newTestOpportunity(t, tenantID)

	repo.On("FindByID", mock.Anything, tenantID, opp.ID).Return(opp, nil)
	repo.On("Delete", mock.Anything, tenantID, opp.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), tenantID, opp.ID))
	repo.AssertExpectations(t)
}

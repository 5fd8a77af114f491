package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// MockOpportunityRepository mocks only the methods this package uses
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Opportunity, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.Opportunity, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindByStage(ctx context.Context, tenantID, stageID uuid.UUID) ([]crm.Opportunity, error) {
	args := m.Called(ctx, tenantID, stageID)
	return args.Get(0).([]crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Save(ctx context.Context, opportunity *crm.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpportunityRepository) ClearSalesperson(ctx context.Context, tenantID, salespersonID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, salespersonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpportunityRepository) ReassignLeadSource(ctx context.Context, tenantID uuid.UUID, from, to string) (int64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpportunityRepository) MoveToStage(ctx context.Context, tenantID, id, stageID uuid.UUID) error {
	args := m.Called(ctx, tenantID, id, stageID)
	return args.Error(0)
}

// MockCallRepository is a mock implementation of crm.CallRepository
type MockCallRepository struct {
	mock.Mock
}

func (m *MockCallRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Call, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Call), args.Error(1)
}

func (m *MockCallRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]crm.Call, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]crm.Call), args.Error(1)
}

func (m *MockCallRepository) FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]crm.Call, error) {
	args := m.Called(ctx, tenantID, opportunityID)
	return args.Get(0).([]crm.Call), args.Error(1)
}

func (m *MockCallRepository) Save(ctx context.Context, call *crm.Call) error {
	args := m.Called(ctx, call)
	return args.Error(0)
}

func (m *MockCallRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCallRepository) MaxNumber(ctx context.Context, tenantID, opportunityID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, opportunityID)
	return args.Int(0), args.Error(1)
}

func (m *MockCallRepository) CreateWithNextNumber(ctx context.Context, call *crm.Call) error {
	args := m.Called(ctx, call)
	return args.Error(0)
}

func fixtureOpportunity(t *testing.T, tenantID uuid.UUID, revenue int64, status crm.OpportunityStatus, createdAt time.Time) crm.Opportunity {
	t.Helper()
	opp, err := crm.NewOpportunity(tenantID, "Deal", "Website", decimal.NewFromInt(revenue), decimal.Zero)
	require.NoError(t, err)
	opp.Status = status
	opp.CreatedAt = createdAt
	return *opp
}

func TestService_GetMetrics(t *testing.T) {
	oppRepo := new(MockOpportunityRepository)
	callRepo := new(MockCallRepository)
	svc := NewService(oppRepo, callRepo, cache.NewMemoryCache())
	tenantID := uuid.New()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	opps := []crm.Opportunity{
		fixtureOpportunity(t, tenantID, 50000, crm.OpportunityStatusWon, now.AddDate(0, 0, -5)),
		fixtureOpportunity(t, tenantID, 30000, crm.OpportunityStatusActive, now.AddDate(0, 0, -3)),
	}
	call, err := crm.NewCall(tenantID, opps[0].ID, crm.CallTypeDiscovery1, 1, now.AddDate(0, 0, -1), 30, nil)
	require.NoError(t, err)
	attended := true
	call.Attended = &attended

	oppRepo.On("FindAll", mock.Anything, tenantID, mock.Anything).Return(opps, nil)
	callRepo.On("FindAll", mock.Anything, tenantID).Return([]crm.Call{*call}, nil)

	resp, err := svc.GetMetrics(context.Background(), tenantID, MetricsQuery{})

	require.NoError(t, err)
	assert.True(t, resp.KPIs.TotalRevenue.Equal(decimal.NewFromInt(50000)))
	assert.True(t, resp.KPIs.PotentialRevenue.Equal(decimal.NewFromInt(80000)))
	assert.Nil(t, resp.Changes, "no month selected, no comparison basis")
	assert.Len(t, resp.CallMetrics, 6)
	assert.Equal(t, 100.0, resp.CallMetrics["discovery_1"].ShowUpRate)
	assert.Equal(t, "all", resp.Filter.Month)
}

func TestService_GetMetrics_WithMonthProducesChanges(t *testing.T) {
	oppRepo := new(MockOpportunityRepository)
	callRepo := new(MockCallRepository)
	svc := NewService(oppRepo, callRepo, cache.NewMemoryCache())
	tenantID := uuid.New()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	opps := []crm.Opportunity{
		fixtureOpportunity(t, tenantID, 10000, crm.OpportunityStatusWon, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
	}

	oppRepo.On("FindAll", mock.Anything, tenantID, mock.Anything).Return(opps, nil)
	callRepo.On("FindAll", mock.Anything, tenantID).Return([]crm.Call{}, nil)

	resp, err := svc.GetMetrics(context.Background(), tenantID, MetricsQuery{Month: "2024-06"})

	require.NoError(t, err)
	require.NotNil(t, resp.Changes)
	require.NotNil(t, resp.Changes.RevenueChange)
	assert.Equal(t, 100.0, *resp.Changes.RevenueChange)
}

func TestService_GetMetrics_ReadsThroughCache(t *testing.T) {
	oppRepo := new(MockOpportunityRepository)
	callRepo := new(MockCallRepository)
	c := cache.NewMemoryCache()
	svc := NewService(oppRepo, callRepo, c)
	tenantID := uuid.New()

	opps := []crm.Opportunity{
		fixtureOpportunity(t, tenantID, 1000, crm.OpportunityStatusActive, time.Now()),
	}

	oppRepo.On("FindAll", mock.Anything, tenantID, mock.Anything).Return(opps, nil).Once()
	callRepo.On("FindAll", mock.Anything, tenantID).Return([]crm.Call{}, nil).Once()

	_, err := svc.GetMetrics(context.Background(), tenantID, MetricsQuery{})
	require.NoError(t, err)

	// second request is served from the cache, no further repo calls
	_, err = svc.GetMetrics(context.Background(), tenantID, MetricsQuery{})
	require.NoError(t, err)

	oppRepo.AssertExpectations(t)
	callRepo.AssertExpectations(t)
}

func TestService_GetMetrics_RefetchesAfterInvalidation(t *testing.T) {
	oppRepo := new(MockOpportunityRepository)
	callRepo := new(MockCallRepository)
	c := cache.NewMemoryCache()
	svc := NewService(oppRepo, callRepo, c)
	tenantID := uuid.New()
	ctx := context.Background()

	opps := []crm.Opportunity{
		fixtureOpportunity(t, tenantID, 1000, crm.OpportunityStatusActive, time.Now()),
	}

	oppRepo.On("FindAll", mock.Anything, tenantID, mock.Anything).Return(opps, nil).Twice()
	callRepo.On("FindAll", mock.Anything, tenantID).Return([]crm.Call{}, nil).Twice()

	_, err := svc.GetMetrics(ctx, tenantID, MetricsQuery{})
	require.NoError(t, err)

	c.Invalidate(ctx, tenantID, cache.CollectionOpportunities, cache.CollectionCalls)

	_, err = svc.GetMetrics(ctx, tenantID, MetricsQuery{})
	require.NoError(t, err)

	oppRepo.AssertExpectations(t)
}

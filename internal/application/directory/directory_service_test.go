package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/directory"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockSalespersonRepository is a mock implementation of directory.SalespersonRepository
type MockSalespersonRepository struct {
	mock.Mock
}

func (m *MockSalespersonRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.Salesperson, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Salesperson), args.Error(1)
}

func (m *MockSalespersonRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]directory.Salesperson, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]directory.Salesperson), args.Error(1)
}

func (m *MockSalespersonRepository) Save(ctx context.Context, salesperson *directory.Salesperson) error {
	args := m.Called(ctx, salesperson)
	return args.Error(0)
}

func (m *MockSalespersonRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLeadSourceRepository is a mock implementation of directory.LeadSourceRepository
type MockLeadSourceRepository struct {
	mock.Mock
}

func (m *MockLeadSourceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.LeadSource, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.LeadSource), args.Error(1)
}

func (m *MockLeadSourceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*directory.LeadSource, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.LeadSource), args.Error(1)
}

func (m *MockLeadSourceRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]directory.LeadSource, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]directory.LeadSource), args.Error(1)
}

func (m *MockLeadSourceRepository) Save(ctx context.Context, leadSource *directory.LeadSource) error {
	args := m.Called(ctx, leadSource)
	return args.Error(0)
}

func (m *MockLeadSourceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

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

// passthroughTxManager runs the function without a real transaction
type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =============================================================================
// Salesperson tests
// =============================================================================

func TestSalespersonService_Create(t *testing.T) {
	spRepo := new(MockSalespersonRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewSalespersonService(spRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache())
	tenantID := uuid.New()

	spRepo.On("Save", mock.Anything, mock.AnythingOfType("*directory.Salesperson")).Return(nil)

	resp, err := svc.Create(context.Background(), tenantID, CreateSalespersonRequest{
		Name:  "Dana Reeve",
		Email: "dana@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "Dana Reeve", resp.Name)
	spRepo.AssertExpectations(t)
}

func TestSalespersonService_Create_BadEmail(t *testing.T) {
	spRepo := new(MockSalespersonRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewSalespersonService(spRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache())

	_, err := svc.Create(context.Background(), uuid.New(), CreateSalespersonRequest{
		Name:  "Dana Reeve",
		Email: "not-an-email",
	})

	require.Error(t, err)
	spRepo.AssertNotCalled(t, "Save")
}

func TestSalespersonService_Delete_ClearsOpportunities(t *testing.T) {
	spRepo := new(MockSalespersonRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewSalespersonService(spRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache())
	tenantID := uuid.New()

	sp, err := directory.NewSalesperson(tenantID, "Dana Reeve", "")
	require.NoError(t, err)

	spRepo.On("FindByID", mock.Anything, tenantID, sp.ID).Return(sp, nil)
	oppRepo.On("ClearSalesperson", mock.Anything, tenantID, sp.ID).Return(int64(4), nil)
	spRepo.On("Delete", mock.Anything, tenantID, sp.ID).Return(nil)

	result, err := svc.Delete(context.Background(), tenantID, sp.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), result.ReassignedOpportunities)
	spRepo.AssertExpectations(t)
	oppRepo.AssertExpectations(t)
}

func TestSalespersonService_Delete_AbortsWhenClearFails(t *testing.T) {
	spRepo := new(MockSalespersonRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewSalespersonService(spRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache())
	tenantID := uuid.New()

	sp, err := directory.NewSalesperson(tenantID, "Dana Reeve", "")
	require.NoError(t, err)

	spRepo.On("FindByID", mock.Anything, tenantID, sp.ID).Return(sp, nil)
	oppRepo.On("ClearSalesperson", mock.Anything, tenantID, sp.ID).Return(int64(0), assert.AnError)

	_, err = svc.Delete(context.Background(), tenantID, sp.ID)

	require.Error(t, err)
	spRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

// =============================================================================
// Lead source tests
// =============================================================================

func TestLeadSourceService_Delete_ReassignsToPlaceholder(t *testing.T) {
	lsRepo := new(MockLeadSourceRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewLeadSourceService(lsRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache(), "Unknown")
	tenantID := uuid.New()

	ls, err := directory.NewLeadSource(tenantID, "Website")
	require.NoError(t, err)

	lsRepo.On("FindByID", mock.Anything, tenantID, ls.ID).Return(ls, nil)
	oppRepo.On("ReassignLeadSource", mock.Anything, tenantID, "Website", "Unknown").Return(int64(7), nil)
	lsRepo.On("Delete", mock.Anything, tenantID, ls.ID).Return(nil)

	result, err := svc.Delete(context.Background(), tenantID, ls.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.ReassignedOpportunities)
	lsRepo.AssertExpectations(t)
	oppRepo.AssertExpectations(t)
}

func TestLeadSourceService_Delete_MissingIsNotFound(t *testing.T) {
	lsRepo := new(MockLeadSourceRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewLeadSourceService(lsRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache(), "Unknown")
	tenantID := uuid.New()
	lsID := uuid.New()

	lsRepo.On("FindByID", mock.Anything, tenantID, lsID).Return(nil, shared.ErrNotFound)

	_, err := svc.Delete(context.Background(), tenantID, lsID)

	assert.ErrorIs(t, err, shared.ErrNotFound, "re-deleting is an error, not a silent success")
	oppRepo.AssertNotCalled(t, "ReassignLeadSource")
}

func TestLeadSourceService_Delete_AbortsWhenReassignFails(t *testing.T) {
	lsRepo := new(MockLeadSourceRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewLeadSourceService(lsRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache(), "Unknown")
	tenantID := uuid.New()

	ls, err := directory.NewLeadSource(tenantID, "Website")
	require.NoError(t, err)

	lsRepo.On("FindByID", mock.Anything, tenantID, ls.ID).Return(ls, nil)
	oppRepo.On("ReassignLeadSource", mock.Anything, tenantID, "Website", "Unknown").Return(int64(0), assert.AnError)

	_, err = svc.Delete(context.Background(), tenantID, ls.ID)

	require.Error(t, err)
	lsRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadSourceService_Create_DuplicateName(t *testing.T) {
	lsRepo := new(MockLeadSourceRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewLeadSourceService(lsRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache(), "Unknown")
	tenantID := uuid.New()

	existing, err := directory.NewLeadSource(tenantID, "Website")
	require.NoError(t, err)

	lsRepo.On("FindByName", mock.Anything, tenantID, "Website").Return(existing, nil)

	_, err = svc.Create(context.Background(), tenantID, CreateLeadSourceRequest{Name: "Website"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestLeadSourceService_Update_RewritesReferences(t *testing.T) {
	lsRepo := new(MockLeadSourceRepository)
	oppRepo := new(MockOpportunityRepository)
	svc := NewLeadSourceService(lsRepo, oppRepo, passthroughTxManager{}, cache.NewMemoryCache(), "Unknown")
	tenantID := uuid.New()

	ls, err := directory.NewLeadSource(tenantID, "Website")
	require.NoError(t, err)

	lsRepo.On("FindByID", mock.Anything, tenantID, ls.ID).Return(ls, nil)
	oppRepo.On("ReassignLeadSource", mock.Anything, tenantID, "Website", "Organic").Return(int64(3), nil)
	lsRepo.On("Save", mock.Anything, ls).Return(nil)

	resp, err := svc.Update(context.Background(), tenantID, ls.ID, UpdateLeadSourceRequest{Name: "Organic"})

	require.NoError(t, err)
	assert.Equal(t, "Organic", resp.Name)
	oppRepo.AssertExpectations(t)
}

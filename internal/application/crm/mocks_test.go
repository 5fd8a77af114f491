package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockOpportunityRepository is a mock implementation of crm.OpportunityRepository
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindByStage(ctx context.Context, tenantID, stageID uuid.UUID) ([]crm.Opportunity, error) {
	args := m.Called(ctx, tenantID, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Call), args.Error(1)
}

func (m *MockCallRepository) FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]crm.Call, error) {
	args := m.Called(ctx, tenantID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/dashboard"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// Service computes dashboard metrics over the tenant's full record set.
// The raw opportunity and call lists are read through the collection
// cache; mutations elsewhere invalidate those collections, which is what
// keeps the dashboard eventually consistent with writes.
type Service struct {
	opportunityRepo crm.OpportunityRepository
	callRepo        crm.CallRepository
	cache           cache.CollectionCache
	now             func() time.Time
}

// NewService creates a new dashboard Service
func NewService(opportunityRepo crm.OpportunityRepository, callRepo crm.CallRepository, collectionCache cache.CollectionCache) *Service {
	return &Service{
		opportunityRepo: opportunityRepo,
		callRepo:        callRepo,
		cache:           collectionCache,
		now:             time.Now,
	}
}

// GetMetrics computes KPIs, period-over-period changes and per-call-type
// metrics under the given filter. Changes are nil when no specific month
// is selected.
func (s *Service) GetMetrics(ctx context.Context, tenantID uuid.UUID, query MetricsQuery) (*MetricsResponse, error) {
	opportunities, err := s.loadOpportunities(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	calls, err := s.loadCalls(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	filter := query.ToFilterState()
	now := s.now()

	filteredOpps, filteredCalls := filter.Apply(opportunities, calls)
	kpis := dashboard.ComputeKPIs(filteredOpps, filteredCalls, now)
	changes := dashboard.ComputeKPIChanges(opportunities, calls, filter, now)
	callMetrics := dashboard.ComputeCallMetrics(filteredCalls, now)

	return &MetricsResponse{
		KPIs:        kpis,
		Changes:     changes,
		CallMetrics: toCallMetricsResponse(callMetrics),
		Filter: FilterEcho{
			SalespersonID: filter.SalespersonID,
			LeadSource:    filter.LeadSource,
			Month:         filter.Month,
		},
	}, nil
}

func (s *Service) loadOpportunities(ctx context.Context, tenantID uuid.UUID) ([]crm.Opportunity, error) {
	if cached, ok := s.cache.Get(ctx, tenantID, cache.CollectionOpportunities); ok {
		if opportunities, ok := cached.([]crm.Opportunity); ok {
			return opportunities, nil
		}
	}

	opportunities, err := s.opportunityRepo.FindAll(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, tenantID, cache.CollectionOpportunities, opportunities)
	return opportunities, nil
}

func (s *Service) loadCalls(ctx context.Context, tenantID uuid.UUID) ([]crm.Call, error) {
	if cached, ok := s.cache.Get(ctx, tenantID, cache.CollectionCalls); ok {
		if calls, ok := cached.([]crm.Call); ok {
			return calls, nil
		}
	}

	calls, err := s.callRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, tenantID, cache.CollectionCalls, calls)
	return calls, nil
}

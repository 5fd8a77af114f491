package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// OpportunityService handles opportunity business operations
type OpportunityService struct {
	opportunityRepo crm.OpportunityRepository
	cache           cache.CollectionCache
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(opportunityRepo crm.OpportunityRepository, collectionCache cache.CollectionCache) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		cache:           collectionCache,
	}
}

// Create creates a new opportunity
func (s *OpportunityService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOpportunityRequest) (*OpportunityResponse, error) {
	revenue := decimal.Zero
	if req.Revenue != nil {
		revenue = *req.Revenue
	}
	cashCollected := decimal.Zero
	if req.CashCollected != nil {
		cashCollected = *req.CashCollected
	}

	opportunity, err := crm.NewOpportunity(tenantID, req.Name, req.LeadSource, revenue, cashCollected)
	if err != nil {
		return nil, err
	}

	if req.SalespersonID != nil {
		opportunity.AssignSalesperson(req.SalespersonID)
	}
	if req.StageID != nil {
		opportunity.MoveToStage(*req.StageID)
	}

	if err := s.opportunityRepo.Save(ctx, opportunity); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionOpportunities)

	response := ToOpportunityResponse(opportunity)
	return &response, nil
}

// GetByID retrieves an opportunity by ID
func (s *OpportunityService) GetByID(ctx context.Context, tenantID, opportunityID uuid.UUID) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	response := ToOpportunityResponse(opportunity)
	return &response, nil
}

// List retrieves opportunities with filtering and pagination
func (s *OpportunityService) List(ctx context.Context, tenantID uuid.UUID, filter OpportunityListFilter) ([]OpportunityResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SalespersonID != "" {
		domainFilter.Filters["salesperson_id"] = filter.SalespersonID
	}
	if filter.LeadSource != "" {
		domainFilter.Filters["lead_source"] = filter.LeadSource
	}
	if filter.StageID != "" {
		domainFilter.Filters["stage_id"] = filter.StageID
	}

	opportunities, err := s.opportunityRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.opportunityRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OpportunityResponse, 0, len(opportunities))
	for i := range opportunities {
		responses = append(responses, ToOpportunityResponse(&opportunities[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to an opportunity
func (s *OpportunityService) Update(ctx context.Context, tenantID, opportunityID uuid.UUID, req UpdateOpportunityRequest) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	name := opportunity.Name
	if req.Name != nil {
		name = *req.Name
	}
	leadSource := opportunity.LeadSource
	if req.LeadSource != nil {
		leadSource = *req.LeadSource
	}
	revenue := opportunity.Revenue
	if req.Revenue != nil {
		revenue = *req.Revenue
	}
	cashCollected := opportunity.CashCollected
	if req.CashCollected != nil {
		cashCollected = *req.CashCollected
	}

	if err := opportunity.Update(name, leadSource, revenue, cashCollected); err != nil {
		return nil, err
	}

	if req.ClearSalesperson {
		opportunity.AssignSalesperson(nil)
	} else if req.SalespersonID != nil {
		opportunity.AssignSalesperson(req.SalespersonID)
	}

	if req.ProposalStatus != nil {
		if err := opportunity.SetProposalStatus(crm.ProposalStatus(*req.ProposalStatus)); err != nil {
			return nil, err
		}
	}

	if err := s.opportunityRepo.Save(ctx, opportunity); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionOpportunities)

	response := ToOpportunityResponse(opportunity)
	return &response, nil
}

// Win marks an opportunity as won
func (s *OpportunityService) Win(ctx context.Context, tenantID, opportunityID uuid.UUID) (*OpportunityResponse, error) {
	return s.transition(ctx, tenantID, opportunityID, (*crm.Opportunity).Win)
}

// Lose marks an opportunity as lost
func (s *OpportunityService) Lose(ctx context.Context, tenantID, opportunityID uuid.UUID) (*OpportunityResponse, error) {
	return s.transition(ctx, tenantID, opportunityID, (*crm.Opportunity).Lose)
}

// Reopen returns a decided opportunity to active
func (s *OpportunityService) Reopen(ctx context.Context, tenantID, opportunityID uuid.UUID) (*OpportunityResponse, error) {
	return s.transition(ctx, tenantID, opportunityID, (*crm.Opportunity).Reopen)
}

func (s *OpportunityService) transition(ctx context.Context, tenantID, opportunityID uuid.UUID, apply func(*crm.Opportunity) error) (*OpportunityResponse, error) {
	opportunity, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}
	if err := apply(opportunity); err != nil {
		return nil, err
	}
	if err := s.opportunityRepo.Save(ctx, opportunity); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionOpportunities)

	response := ToOpportunityResponse(opportunity)
	return &response, nil
}

// MoveStage moves an opportunity into a pipeline stage. The stage_id and
// last_interaction_at update is a single atomic write, so two rapid
// moves of the same card resolve last-write-wins by commit order and
// never leave a half-applied state.
func (s *OpportunityService) MoveStage(ctx context.Context, tenantID, opportunityID uuid.UUID, req MoveStageRequest) (*OpportunityResponse, error) {
	if err := s.opportunityRepo.MoveToStage(ctx, tenantID, opportunityID, req.StageID); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionOpportunities)

	opportunity, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}
	response := ToOpportunityResponse(opportunity)
	return &response, nil
}

// Delete removes an opportunity after explicit user confirmation
func (s *OpportunityService) Delete(ctx context.Context, tenantID, opportunityID uuid.UUID) error {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return err
	}
	if err := s.opportunityRepo.Delete(ctx, tenantID, opportunityID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionOpportunities, cache.CollectionCalls)
	return nil
}

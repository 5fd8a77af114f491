package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/directory"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// LeadSourceService handles the user-managed lead source list
type LeadSourceService struct {
	leadSourceRepo  directory.LeadSourceRepository
	opportunityRepo crm.OpportunityRepository
	txManager       shared.TransactionManager
	cache           cache.CollectionCache
	placeholder     string
}

// NewLeadSourceService creates a new LeadSourceService. Deleted sources
// leave their opportunities pointing at the placeholder value.
func NewLeadSourceService(
	leadSourceRepo directory.LeadSourceRepository,
	opportunityRepo crm.OpportunityRepository,
	txManager shared.TransactionManager,
	collectionCache cache.CollectionCache,
	placeholder string,
) *LeadSourceService {
	if placeholder == "" {
		placeholder = "Unknown"
	}
	return &LeadSourceService{
		leadSourceRepo:  leadSourceRepo,
		opportunityRepo: opportunityRepo,
		txManager:       txManager,
		cache:           collectionCache,
		placeholder:     placeholder,
	}
}

// Create adds a lead source
func (s *LeadSourceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLeadSourceRequest) (*LeadSourceResponse, error) {
	if existing, err := s.leadSourceRepo.FindByName(ctx, tenantID, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Lead source with this name already exists")
	}

	leadSource, err := directory.NewLeadSource(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.leadSourceRepo.Save(ctx, leadSource); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionLeadSources)

	response := ToLeadSourceResponse(leadSource)
	return &response, nil
}

// List retrieves the tenant's lead sources
func (s *LeadSourceService) List(ctx context.Context, tenantID uuid.UUID) ([]LeadSourceResponse, error) {
	leadSources, err := s.leadSourceRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]LeadSourceResponse, 0, len(leadSources))
	for i := range leadSources {
		responses = append(responses, ToLeadSourceResponse(&leadSources[i]))
	}
	return responses, nil
}

// Update renames a lead source and rewrites the referencing
// opportunities to the new name in the same transaction
func (s *LeadSourceService) Update(ctx context.Context, tenantID, leadSourceID uuid.UUID, req UpdateLeadSourceRequest) (*LeadSourceResponse, error) {
	leadSource, err := s.leadSourceRepo.FindByID(ctx, tenantID, leadSourceID)
	if err != nil {
		return nil, err
	}

	oldName := leadSource.Name
	if err := leadSource.Rename(req.Name); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.opportunityRepo.ReassignLeadSource(txCtx, tenantID, oldName, req.Name); err != nil {
			return err
		}
		return s.leadSourceRepo.Save(txCtx, leadSource)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionLeadSources, cache.CollectionOpportunities)

	response := ToLeadSourceResponse(leadSource)
	return &response, nil
}

// Delete removes a lead source. Referencing opportunities are reassigned
// to the placeholder in the same transaction as the delete, so the
// reporting dimension is never orphaned. Deleting an already-deleted id
// returns NOT_FOUND, not a silent success.
func (s *LeadSourceService) Delete(ctx context.Context, tenantID, leadSourceID uuid.UUID) (*DeleteResult, error) {
	leadSource, err := s.leadSourceRepo.FindByID(ctx, tenantID, leadSourceID)
	if err != nil {
		return nil, err
	}

	var reassigned int64
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		n, err := s.opportunityRepo.ReassignLeadSource(txCtx, tenantID, leadSource.Name, s.placeholder)
		if err != nil {
			return err
		}
		reassigned = n
		return s.leadSourceRepo.Delete(txCtx, tenantID, leadSourceID)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionLeadSources, cache.CollectionOpportunities)

	return &DeleteResult{ReassignedOpportunities: reassigned}, nil
}

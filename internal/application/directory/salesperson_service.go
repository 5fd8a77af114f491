package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/directory"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// SalespersonService handles the sales team directory
type SalespersonService struct {
	salespersonRepo directory.SalespersonRepository
	opportunityRepo crm.OpportunityRepository
	txManager       shared.TransactionManager
	cache           cache.CollectionCache
}

// NewSalespersonService creates a new SalespersonService
func NewSalespersonService(
	salespersonRepo directory.SalespersonRepository,
	opportunityRepo crm.OpportunityRepository,
	txManager shared.TransactionManager,
	collectionCache cache.CollectionCache,
) *SalespersonService {
	return &SalespersonService{
		salespersonRepo: salespersonRepo,
		opportunityRepo: opportunityRepo,
		txManager:       txManager,
		cache:           collectionCache,
	}
}

// Create adds a salesperson
func (s *SalespersonService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalespersonRequest) (*SalespersonResponse, error) {
	salesperson, err := directory.NewSalesperson(tenantID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.salespersonRepo.Save(ctx, salesperson); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionSalespeople)

	response := ToSalespersonResponse(salesperson)
	return &response, nil
}

// GetByID retrieves a salesperson by ID
func (s *SalespersonService) GetByID(ctx context.Context, tenantID, salespersonID uuid.UUID) (*SalespersonResponse, error) {
	salesperson, err := s.salespersonRepo.FindByID(ctx, tenantID, salespersonID)
	if err != nil {
		return nil, err
	}
	response := ToSalespersonResponse(salesperson)
	return &response, nil
}

// List retrieves the tenant's salespeople
func (s *SalespersonService) List(ctx context.Context, tenantID uuid.UUID) ([]SalespersonResponse, error) {
	salespeople, err := s.salespersonRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]SalespersonResponse, 0, len(salespeople))
	for i := range salespeople {
		responses = append(responses, ToSalespersonResponse(&salespeople[i]))
	}
	return responses, nil
}

// Update updates a salesperson's details
func (s *SalespersonService) Update(ctx context.Context, tenantID, salespersonID uuid.UUID, req UpdateSalespersonRequest) (*SalespersonResponse, error) {
	salesperson, err := s.salespersonRepo.FindByID(ctx, tenantID, salespersonID)
	if err != nil {
		return nil, err
	}
	if err := salesperson.Update(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.salespersonRepo.Save(ctx, salesperson); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionSalespeople)

	response := ToSalespersonResponse(salesperson)
	return &response, nil
}

// Delete removes a salesperson. Their opportunities are kept for
// reporting: salesperson_id is nulled on every dependent row in the same
// transaction, so a failure leaves nothing half-done.
func (s *SalespersonService) Delete(ctx context.Context, tenantID, salespersonID uuid.UUID) (*DeleteResult, error) {
	if _, err := s.salespersonRepo.FindByID(ctx, tenantID, salespersonID); err != nil {
		return nil, err
	}

	var reassigned int64
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		n, err := s.opportunityRepo.ClearSalesperson(txCtx, tenantID, salespersonID)
		if err != nil {
			return err
		}
		reassigned = n
		return s.salespersonRepo.Delete(txCtx, tenantID, salespersonID)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionSalespeople, cache.CollectionOpportunities)

	return &DeleteResult{ReassignedOpportunities: reassigned}, nil
}

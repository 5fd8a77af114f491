package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/pipeline"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// Service handles pipeline and stage management plus the kanban board
type Service struct {
	pipelineRepo    pipeline.Repository
	opportunityRepo crm.OpportunityRepository
	cache           cache.CollectionCache
}

// NewService creates a new pipeline Service
func NewService(pipelineRepo pipeline.Repository, opportunityRepo crm.OpportunityRepository, collectionCache cache.CollectionCache) *Service {
	return &Service{
		pipelineRepo:    pipelineRepo,
		opportunityRepo: opportunityRepo,
		cache:           collectionCache,
	}
}

// Create creates a pipeline. Creating it as default demotes the
// previous default.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreatePipelineRequest) (*PipelineResponse, error) {
	p, err := pipeline.NewPipeline(tenantID, req.Name, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.pipelineRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if req.IsDefault {
		if err := s.pipelineRepo.SetDefault(ctx, tenantID, p.ID); err != nil {
			return nil, err
		}
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines)

	response := ToPipelineResponse(p)
	return &response, nil
}

// GetByID retrieves a pipeline with its stages
func (s *Service) GetByID(ctx context.Context, tenantID, pipelineID uuid.UUID) (*PipelineResponse, error) {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return nil, err
	}
	response := ToPipelineResponse(p)
	return &response, nil
}

// List retrieves the tenant's pipelines
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]PipelineResponse, error) {
	pipelines, err := s.pipelineRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]PipelineResponse, 0, len(pipelines))
	for i := range pipelines {
		responses = append(responses, ToPipelineResponse(&pipelines[i]))
	}
	return responses, nil
}

// Update renames a pipeline
func (s *Service) Update(ctx context.Context, tenantID, pipelineID uuid.UUID, req UpdatePipelineRequest) (*PipelineResponse, error) {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return nil, err
	}
	if err := p.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.pipelineRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines)

	response := ToPipelineResponse(p)
	return &response, nil
}

// SetDefault marks a pipeline as the tenant default, demoting all others
func (s *Service) SetDefault(ctx context.Context, tenantID, pipelineID uuid.UUID) error {
	if _, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID); err != nil {
		return err
	}
	if err := s.pipelineRepo.SetDefault(ctx, tenantID, pipelineID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines)
	return nil
}

// Delete removes a pipeline and detaches its opportunities
func (s *Service) Delete(ctx context.Context, tenantID, pipelineID uuid.UUID) error {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return err
	}

	for i := range p.Stages {
		opportunities, err := s.opportunityRepo.FindByStage(ctx, tenantID, p.Stages[i].ID)
		if err != nil {
			return err
		}
		for j := range opportunities {
			opportunities[j].ClearStage()
			if err := s.opportunityRepo.Save(ctx, &opportunities[j]); err != nil {
				return err
			}
		}
	}

	if err := s.pipelineRepo.Delete(ctx, tenantID, pipelineID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines, cache.CollectionOpportunities)
	return nil
}

// AddStage appends a stage to a pipeline
func (s *Service) AddStage(ctx context.Context, tenantID, pipelineID uuid.UUID, req CreateStageRequest) (*StageResponse, error) {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return nil, err
	}
	stage, err := p.AddStage(req.Name, req.Color, req.IsFinal)
	if err != nil {
		return nil, err
	}
	if err := s.pipelineRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines)

	response := ToStageResponse(stage)
	return &response, nil
}

// UpdateStage updates a stage's display attributes
func (s *Service) UpdateStage(ctx context.Context, tenantID, pipelineID, stageID uuid.UUID, req UpdateStageRequest) (*PipelineResponse, error) {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return nil, err
	}
	if err := p.UpdateStage(stageID, req.Name, req.Color, req.IsFinal); err != nil {
		return nil, err
	}
	if err := s.pipelineRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines)

	response := ToPipelineResponse(p)
	return &response, nil
}

// RemoveStage deletes a stage, detaching its opportunities first
func (s *Service) RemoveStage(ctx context.Context, tenantID, pipelineID, stageID uuid.UUID) error {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return err
	}

	opportunities, err := s.opportunityRepo.FindByStage(ctx, tenantID, stageID)
	if err != nil {
		return err
	}
	for i := range opportunities {
		opportunities[i].ClearStage()
		if err := s.opportunityRepo.Save(ctx, &opportunities[i]); err != nil {
			return err
		}
	}

	if err := p.RemoveStage(stageID); err != nil {
		return err
	}
	if err := s.pipelineRepo.Save(ctx, p); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines, cache.CollectionOpportunities)
	return nil
}

// ReorderStages applies a new stage display order
func (s *Service) ReorderStages(ctx context.Context, tenantID, pipelineID uuid.UUID, req ReorderStagesRequest) (*PipelineResponse, error) {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return nil, err
	}
	if err := p.ReorderStages(req.StageIDs); err != nil {
		return nil, err
	}
	if err := s.pipelineRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionPipelines)

	response := ToPipelineResponse(p)
	return &response, nil
}

// Board builds the kanban view: one column per stage in display order,
// each with its opportunities and their summed revenue
func (s *Service) Board(ctx context.Context, tenantID, pipelineID uuid.UUID) (*BoardResponse, error) {
	p, err := s.pipelineRepo.FindByID(ctx, tenantID, pipelineID)
	if err != nil {
		return nil, err
	}

	ordered := p.OrderedStages()
	columns := make([]BoardColumn, 0, len(ordered))
	for i := range ordered {
		opportunities, err := s.opportunityRepo.FindByStage(ctx, tenantID, ordered[i].ID)
		if err != nil {
			return nil, err
		}

		total := decimal.Zero
		responses := make([]appcrm.OpportunityResponse, 0, len(opportunities))
		for j := range opportunities {
			total = total.Add(opportunities[j].Revenue)
			responses = append(responses, appcrm.ToOpportunityResponse(&opportunities[j]))
		}

		columns = append(columns, BoardColumn{
			Stage:         ToStageResponse(&ordered[i]),
			Opportunities: responses,
			TotalRevenue:  total,
		})
	}

	return &BoardResponse{
		Pipeline: ToPipelineResponse(p),
		Columns:  columns,
	}, nil
}

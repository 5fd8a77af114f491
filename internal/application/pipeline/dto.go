package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/domain/pipeline"
)

// CreatePipelineRequest represents a request to create a pipeline
type CreatePipelineRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	IsDefault bool   `json:"is_default"`
}

// UpdatePipelineRequest represents a request to rename a pipeline
type UpdatePipelineRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateStageRequest represents a request to append a stage
type CreateStageRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Color   string `json:"color" binding:"omitempty,max=7"`
	IsFinal bool   `json:"is_final"`
}

// UpdateStageRequest represents a request to update a stage
type UpdateStageRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Color   string `json:"color" binding:"omitempty,max=7"`
	IsFinal bool   `json:"is_final"`
}

// ReorderStagesRequest lists every stage ID in the desired display order
type ReorderStagesRequest struct {
	StageIDs []uuid.UUID `json:"stage_ids" binding:"required,min=1"`
}

// StageResponse represents a stage in API responses
type StageResponse struct {
	ID           uuid.UUID `json:"id"`
	PipelineID   uuid.UUID `json:"pipeline_id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	Color        string    `json:"color"`
	IsFinal      bool      `json:"is_final"`
}

// PipelineResponse represents a pipeline in API responses
type PipelineResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	IsDefault bool            `json:"is_default"`
	Stages    []StageResponse `json:"stages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BoardColumn is one kanban column: a stage plus the opportunities
// currently in it and their total revenue
type BoardColumn struct {
	Stage         StageResponse                `json:"stage"`
	Opportunities []appcrm.OpportunityResponse `json:"opportunities"`
	TotalRevenue  decimal.Decimal              `json:"total_revenue"`
}

// BoardResponse is the kanban view of a pipeline
type BoardResponse struct {
	Pipeline PipelineResponse `json:"pipeline"`
	Columns  []BoardColumn    `json:"columns"`
}

// ToStageResponse converts a domain stage to a response DTO
func ToStageResponse(s *pipeline.Stage) StageResponse {
	return StageResponse{
		ID:           s.ID,
		PipelineID:   s.PipelineID,
		Name:         s.Name,
		DisplayOrder: s.DisplayOrder,
		Color:        s.Color,
		IsFinal:      s.IsFinal,
	}
}

// ToPipelineResponse converts a domain pipeline to a response DTO with
// stages in display order
func ToPipelineResponse(p *pipeline.Pipeline) PipelineResponse {
	ordered := p.OrderedStages()
	stages := make([]StageResponse, 0, len(ordered))
	for i := range ordered {
		stages = append(stages, ToStageResponse(&ordered[i]))
	}
	return PipelineResponse{
		ID:        p.ID,
		Name:      p.Name,
		IsDefault: p.IsDefault,
		Stages:    stages,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

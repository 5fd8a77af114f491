package pipeline

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Pipeline is a named, ordered container of stages. At most one pipeline
// per tenant is the default.
type Pipeline struct {
	shared.TenantAggregateRoot
	Name      string
	IsDefault bool
	Stages    []Stage
}

// Stage is a bucket within a pipeline. IsFinal is advisory for display
// only; it does not restrict transitions.
type Stage struct {
	shared.BaseEntity
	PipelineID   uuid.UUID
	Name         string
	DisplayOrder int
	Color        string
	IsFinal      bool
}

// NewPipeline creates a new pipeline
func NewPipeline(tenantID uuid.UUID, name string, isDefault bool) (*Pipeline, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PIPELINE_NAME", "Pipeline name cannot be empty")
	}
	return &Pipeline{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		IsDefault:           isDefault,
	}, nil
}

// Rename changes the pipeline name
func (p *Pipeline) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PIPELINE_NAME", "Pipeline name cannot be empty")
	}
	p.Name = name
	p.touch()
	return nil
}

// MarkDefault flags this pipeline as the tenant default. The repository
// clears the flag on the tenant's other pipelines in the same transaction.
func (p *Pipeline) MarkDefault() {
	p.IsDefault = true
	p.touch()
}

// UnmarkDefault clears the default flag
func (p *Pipeline) UnmarkDefault() {
	p.IsDefault = false
	p.touch()
}

// AddStage appends a stage at the end of the pipeline
func (p *Pipeline) AddStage(name, color string, isFinal bool) (*Stage, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STAGE_NAME", "Stage name cannot be empty")
	}
	if color != "" && !colorPattern.MatchString(color) {
		return nil, shared.NewDomainError("INVALID_STAGE_COLOR", "Stage color must be a hex value like #ff8800")
	}

	order := 0
	for i := range p.Stages {
		if p.Stages[i].DisplayOrder >= order {
			order = p.Stages[i].DisplayOrder + 1
		}
	}

	stage := Stage{
		BaseEntity:   shared.NewBaseEntity(),
		PipelineID:   p.ID,
		Name:         name,
		DisplayOrder: order,
		Color:        color,
		IsFinal:      isFinal,
	}
	p.Stages = append(p.Stages, stage)
	p.touch()
	return &p.Stages[len(p.Stages)-1], nil
}

// UpdateStage updates a stage's name, color and final flag
func (p *Pipeline) UpdateStage(stageID uuid.UUID, name, color string, isFinal bool) error {
	if name == "" {
		return shared.NewDomainError("INVALID_STAGE_NAME", "Stage name cannot be empty")
	}
	if color != "" && !colorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_STAGE_COLOR", "Stage color must be a hex value like #ff8800")
	}
	for i := range p.Stages {
		if p.Stages[i].ID == stageID {
			p.Stages[i].Name = name
			p.Stages[i].Color = color
			p.Stages[i].IsFinal = isFinal
			p.Stages[i].UpdatedAt = time.Now()
			p.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveStage removes a stage from the pipeline
func (p *Pipeline) RemoveStage(stageID uuid.UUID) error {
	for i := range p.Stages {
		if p.Stages[i].ID == stageID {
			p.Stages = append(p.Stages[:i], p.Stages[i+1:]...)
			p.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ReorderStages applies a new display order given the full list of stage
// IDs in their desired order
func (p *Pipeline) ReorderStages(orderedIDs []uuid.UUID) error {
	if len(orderedIDs) != len(p.Stages) {
		return shared.NewDomainError("INVALID_STAGE_ORDER", "Stage order must list every stage exactly once")
	}
	position := make(map[uuid.UUID]int, len(orderedIDs))
	for i, id := range orderedIDs {
		position[id] = i
	}
	if len(position) != len(p.Stages) {
		return shared.NewDomainError("INVALID_STAGE_ORDER", "Stage order must list every stage exactly once")
	}
	for i := range p.Stages {
		pos, ok := position[p.Stages[i].ID]
		if !ok {
			return shared.NewDomainError("INVALID_STAGE_ORDER", "Stage order references an unknown stage")
		}
		p.Stages[i].DisplayOrder = pos
		p.Stages[i].UpdatedAt = time.Now()
	}
	p.touch()
	return nil
}

// StageByID returns the stage with the given ID, or nil
func (p *Pipeline) StageByID(stageID uuid.UUID) *Stage {
	for i := range p.Stages {
		if p.Stages[i].ID == stageID {
			return &p.Stages[i]
		}
	}
	return nil
}

// OrderedStages returns the stages sorted by display order
func (p *Pipeline) OrderedStages() []Stage {
	out := make([]Stage, len(p.Stages))
	copy(out, p.Stages)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].DisplayOrder < out[j-1].DisplayOrder; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (p *Pipeline) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

package models

import (
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/pipeline"
)

// PipelineModel is the persistence model for the Pipeline aggregate.
// Stages are loaded and saved together with their pipeline.
type PipelineModel struct {
	TenantAggregateModel
	Name      string       `gorm:"type:varchar(200);not null"`
	IsDefault bool         `gorm:"not null;default:false"`
	Stages    []StageModel `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PipelineModel) TableName() string {
	return "pipelines"
}

// ToDomain converts the persistence model to a domain Pipeline.
func (m *PipelineModel) ToDomain() *pipeline.Pipeline {
	stages := make([]pipeline.Stage, len(m.Stages))
	for i := range m.Stages {
		stages[i] = m.Stages[i].ToDomain()
	}
	return &pipeline.Pipeline{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		IsDefault:           m.IsDefault,
		Stages:              stages,
	}
}

// PipelineModelFromDomain creates a persistence model from a domain Pipeline.
func PipelineModelFromDomain(p *pipeline.Pipeline) *PipelineModel {
	m := &PipelineModel{}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.IsDefault = p.IsDefault
	m.Stages = make([]StageModel, len(p.Stages))
	for i := range p.Stages {
		m.Stages[i] = StageModelFromDomain(&p.Stages[i])
	}
	return m
}

// StageModel is the persistence model for a pipeline stage.
type StageModel struct {
	BaseModel
	PipelineID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(200);not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	Color        string    `gorm:"type:varchar(7)"`
	IsFinal      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StageModel) TableName() string {
	return "pipeline_stages"
}

// ToDomain converts the persistence model to a domain Stage.
func (m *StageModel) ToDomain() pipeline.Stage {
	return pipeline.Stage{
		BaseEntity:   m.BaseModel.ToDomain(),
		PipelineID:   m.PipelineID,
		Name:         m.Name,
		DisplayOrder: m.DisplayOrder,
		Color:        m.Color,
		IsFinal:      m.IsFinal,
	}
}

// StageModelFromDomain creates a persistence model from a domain Stage.
func StageModelFromDomain(s *pipeline.Stage) StageModel {
	m := StageModel{
		PipelineID:   s.PipelineID,
		Name:         s.Name,
		DisplayOrder: s.DisplayOrder,
		Color:        s.Color,
		IsFinal:      s.IsFinal,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/pipeline"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
)

// GormPipelineRepository implements pipeline.Repository using GORM.
// Stages are persisted as part of the pipeline aggregate: Save replaces
// the stage set wholesale inside one transaction.
type GormPipelineRepository struct {
	db *gorm.DB
}

// NewGormPipelineRepository creates a new GormPipelineRepository
func NewGormPipelineRepository(db *gorm.DB) *GormPipelineRepository {
	return &GormPipelineRepository{db: db}
}

func (r *GormPipelineRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a pipeline with its stages preloaded
func (r *GormPipelineRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*pipeline.Pipeline, error) {
	var model models.PipelineModel
	if err := r.conn(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all pipelines for a tenant with stages preloaded
func (r *GormPipelineRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]pipeline.Pipeline, error) {
	var pipelineModels []models.PipelineModel
	if err := r.conn(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&pipelineModels).Error; err != nil {
		return nil, err
	}

	pipelines := make([]pipeline.Pipeline, len(pipelineModels))
	for i := range pipelineModels {
		pipelines[i] = *pipelineModels[i].ToDomain()
	}
	return pipelines, nil
}

// FindDefault finds the tenant's default pipeline
func (r *GormPipelineRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*pipeline.Pipeline, error) {
	var model models.PipelineModel
	if err := r.conn(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the pipeline and replaces its stage set. Stages removed
// from the aggregate are deleted.
func (r *GormPipelineRepository) Save(ctx context.Context, p *pipeline.Pipeline) error {
	model := models.PipelineModelFromDomain(p)
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stages").Save(model).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(model.Stages))
		for i := range model.Stages {
			model.Stages[i].PipelineID = model.ID
			keep = append(keep, model.Stages[i].ID)
		}

		del := tx.Where("pipeline_id = ?", model.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&models.StageModel{}).Error; err != nil {
			return err
		}

		if len(model.Stages) > 0 {
			if err := tx.Save(&model.Stages).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a pipeline; its stages go with it via foreign key cascade
func (r *GormPipelineRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.PipelineModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetDefault marks one pipeline as the tenant default and clears the
// flag on all others, in a single transaction
func (r *GormPipelineRepository) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.PipelineModel{}).
			Where("tenant_id = ? AND id <> ? AND is_default = ?", tenantID, id, true).
			Updates(map[string]any{"is_default": false, "updated_at": now}).Error; err != nil {
			return err
		}

		result := tx.Model(&models.PipelineModel{}).
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Updates(map[string]any{"is_default": true, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormPipelineRepository implements Repository
var _ pipeline.Repository = (*GormPipelineRepository)(nil)

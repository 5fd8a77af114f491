package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/directory"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
)

// GormLeadSourceRepository implements directory.LeadSourceRepository using GORM
type GormLeadSourceRepository struct {
	db *gorm.DB
}

// NewGormLeadSourceRepository creates a new GormLeadSourceRepository
func NewGormLeadSourceRepository(db *gorm.DB) *GormLeadSourceRepository {
	return &GormLeadSourceRepository{db: db}
}

func (r *GormLeadSourceRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a lead source by its ID
func (r *GormLeadSourceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.LeadSource, error) {
	var model models.LeadSourceModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a lead source by its exact name
func (r *GormLeadSourceRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*directory.LeadSource, error) {
	var model models.LeadSourceModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all lead sources for a tenant in name order
func (r *GormLeadSourceRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]directory.LeadSource, error) {
	var lsModels []models.LeadSourceModel
	if err := r.conn(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&lsModels).Error; err != nil {
		return nil, err
	}

	leadSources := make([]directory.LeadSource, len(lsModels))
	for i := range lsModels {
		leadSources[i] = *lsModels[i].ToDomain()
	}
	return leadSources, nil
}

// Save creates or updates a lead source
func (r *GormLeadSourceRepository) Save(ctx context.Context, leadSource *directory.LeadSource) error {
	return r.conn(ctx).Save(models.LeadSourceModelFromDomain(leadSource)).Error
}

// Delete deletes a lead source
func (r *GormLeadSourceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.LeadSourceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLeadSourceRepository implements LeadSourceRepository
var _ directory.LeadSourceRepository = (*GormLeadSourceRepository)(nil)

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

// GormSalespersonRepository implements directory.SalespersonRepository using GORM
type GormSalespersonRepository struct {
	db *gorm.DB
}

// NewGormSalespersonRepository creates a new GormSalespersonRepository
func NewGormSalespersonRepository(db *gorm.DB) *GormSalespersonRepository {
	return &GormSalespersonRepository{db: db}
}

func (r *GormSalespersonRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a salesperson by its ID
func (r *GormSalespersonRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*directory.Salesperson, error) {
	var model models.SalespersonModel
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

// FindAll finds all salespeople for a tenant in name order
func (r *GormSalespersonRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]directory.Salesperson, error) {
	var spModels []models.SalespersonModel
	if err := r.conn(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&spModels).Error; err != nil {
		return nil, err
	}

	salespeople := make([]directory.Salesperson, len(spModels))
	for i := range spModels {
		salespeople[i] = *spModels[i].ToDomain()
	}
	return salespeople, nil
}

// Save creates or updates a salesperson
func (r *GormSalespersonRepository) Save(ctx context.Context, salesperson *directory.Salesperson) error {
	return r.conn(ctx).Save(models.SalespersonModelFromDomain(salesperson)).Error
}

// Delete deletes a salesperson
func (r *GormSalespersonRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.SalespersonModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSalespersonRepository implements SalespersonRepository
var _ directory.SalespersonRepository = (*GormSalespersonRepository)(nil)

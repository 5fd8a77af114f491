package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
)

// GormCallRepository implements crm.CallRepository using GORM
type GormCallRepository struct {
	db *gorm.DB
}

// NewGormCallRepository creates a new GormCallRepository
func NewGormCallRepository(db *gorm.DB) *GormCallRepository {
	return &GormCallRepository{db: db}
}

func (r *GormCallRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds a call by its ID
func (r *GormCallRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Call, error) {
	var model models.CallModel
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

// FindAll finds all calls for a tenant
func (r *GormCallRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]crm.Call, error) {
	var callModels []models.CallModel
	if err := r.conn(ctx).
		Where("tenant_id = ?", tenantID).
		Order("date ASC").
		Find(&callModels).Error; err != nil {
		return nil, err
	}

	calls := make([]crm.Call, len(callModels))
	for i := range callModels {
		calls[i] = *callModels[i].ToDomain()
	}
	return calls, nil
}

// FindByOpportunity finds the calls scheduled on an opportunity in
// numbering order
func (r *GormCallRepository) FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]crm.Call, error) {
	var callModels []models.CallModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND opportunity_id = ?", tenantID, opportunityID).
		Order("number ASC").
		Find(&callModels).Error; err != nil {
		return nil, err
	}

	calls := make([]crm.Call, len(callModels))
	for i := range callModels {
		calls[i] = *callModels[i].ToDomain()
	}
	return calls, nil
}

// Save creates or updates a call
func (r *GormCallRepository) Save(ctx context.Context, call *crm.Call) error {
	model := models.CallModelFromDomain(call)
	return r.conn(ctx).Save(model).Error
}

// Delete deletes a call
func (r *GormCallRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.CallModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MaxNumber returns the highest call number assigned on an opportunity,
// 0 if it has no calls
func (r *GormCallRepository) MaxNumber(ctx context.Context, tenantID, opportunityID uuid.UUID) (int, error) {
	var max int
	if err := r.conn(ctx).Model(&models.CallModel{}).
		Where("tenant_id = ? AND opportunity_id = ?", tenantID, opportunityID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// CreateWithNextNumber inserts the call with number = max+1 computed
// inside a transaction. The parent opportunity row is locked so two
// concurrent inserts on the same opportunity serialize.
func (r *GormCallRepository) CreateWithNextNumber(ctx context.Context, call *crm.Call) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.OpportunityModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", call.TenantID, call.OpportunityID).
			First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		var max int
		if err := tx.Model(&models.CallModel{}).
			Where("tenant_id = ? AND opportunity_id = ?", call.TenantID, call.OpportunityID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&max).Error; err != nil {
			return err
		}

		call.Number = max + 1
		return tx.Create(models.CallModelFromDomain(call)).Error
	})
}

// Ensure GormCallRepository implements CallRepository
var _ crm.CallRepository = (*GormCallRepository)(nil)

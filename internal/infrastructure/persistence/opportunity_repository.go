package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
)

// GormOpportunityRepository implements crm.OpportunityRepository using GORM
type GormOpportunityRepository struct {
	db *gorm.DB
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

func (r *GormOpportunityRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an opportunity with its calls preloaded
func (r *GormOpportunityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Opportunity, error) {
	var model models.OpportunityModel
	if err := r.conn(ctx).
		Preload("Calls", func(db *gorm.DB) *gorm.DB { return db.Order("number ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all opportunities for a tenant matching the filter
func (r *GormOpportunityRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]crm.Opportunity, error) {
	var oppModels []models.OpportunityModel
	query := r.applyFilter(
		r.conn(ctx).Model(&models.OpportunityModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&oppModels).Error; err != nil {
		return nil, err
	}

	opportunities := make([]crm.Opportunity, len(oppModels))
	for i := range oppModels {
		opportunities[i] = *oppModels[i].ToDomain()
	}
	return opportunities, nil
}

// FindByStage finds opportunities sitting in a pipeline stage
func (r *GormOpportunityRepository) FindByStage(ctx context.Context, tenantID, stageID uuid.UUID) ([]crm.Opportunity, error) {
	var oppModels []models.OpportunityModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND stage_id = ?", tenantID, stageID).
		Order("last_interaction_at DESC NULLS LAST, created_at DESC").
		Find(&oppModels).Error; err != nil {
		return nil, err
	}

	opportunities := make([]crm.Opportunity, len(oppModels))
	for i := range oppModels {
		opportunities[i] = *oppModels[i].ToDomain()
	}
	return opportunities, nil
}

// Save creates or updates an opportunity
func (r *GormOpportunityRepository) Save(ctx context.Context, opportunity *crm.Opportunity) error {
	model := models.OpportunityModelFromDomain(opportunity)
	return r.conn(ctx).Omit("Calls").Save(model).Error
}

// Delete deletes an opportunity; its calls, notes, contacts and
// attachment metadata go with it via foreign key cascade
func (r *GormOpportunityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.OpportunityModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts opportunities for a tenant matching the filter
func (r *GormOpportunityRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.conn(ctx).Model(&models.OpportunityModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearSalesperson nulls salesperson_id on every opportunity owned by
// the given salesperson
func (r *GormOpportunityRepository) ClearSalesperson(ctx context.Context, tenantID, salespersonID uuid.UUID) (int64, error) {
	result := r.conn(ctx).Model(&models.OpportunityModel{}).
		Where("tenant_id = ? AND salesperson_id = ?", tenantID, salespersonID).
		Updates(map[string]any{
			"salesperson_id": nil,
			"updated_at":     time.Now(),
		})
	return result.RowsAffected, result.Error
}

// ReassignLeadSource rewrites lead_source from one value to another on
// every matching opportunity
func (r *GormOpportunityRepository) ReassignLeadSource(ctx context.Context, tenantID uuid.UUID, from, to string) (int64, error) {
	result := r.conn(ctx).Model(&models.OpportunityModel{}).
		Where("tenant_id = ? AND lead_source = ?", tenantID, from).
		Updates(map[string]any{
			"lead_source": to,
			"updated_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}

// MoveToStage atomically sets stage_id and last_interaction_at on a
// single opportunity. Concurrent moves resolve last-write-wins by
// commit order.
func (r *GormOpportunityRepository) MoveToStage(ctx context.Context, tenantID, id, stageID uuid.UUID) error {
	now := time.Now()
	result := r.conn(ctx).Model(&models.OpportunityModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]any{
			"stage_id":            stageID,
			"last_interaction_at": now,
			"updated_at":          now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination to the query
func (r *GormOpportunityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at ASC")
	}

	return query
}

// applyFilterWithoutPagination applies search and field filters
func (r *GormOpportunityRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "salesperson_id":
			query = query.Where("salesperson_id = ?", value)
		case "lead_source":
			query = query.Where("lead_source = ?", value)
		case "stage_id":
			query = query.Where("stage_id = ?", value)
		}
	}

	return query
}

// Ensure GormOpportunityRepository implements OpportunityRepository
var _ crm.OpportunityRepository = (*GormOpportunityRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
)

// GormAttachmentRepository implements crm.AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

func (r *GormAttachmentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds attachment metadata by its ID
func (r *GormAttachmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*crm.Attachment, error) {
	var model models.AttachmentModel
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

// FindByOpportunity finds the attachments on an opportunity, newest first
func (r *GormAttachmentRepository) FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]crm.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND opportunity_id = ?", tenantID, opportunityID).
		Order("created_at DESC").
		Find(&attachmentModels).Error; err != nil {
		return nil, err
	}

	attachments := make([]crm.Attachment, len(attachmentModels))
	for i := range attachmentModels {
		attachments[i] = *attachmentModels[i].ToDomain()
	}
	return attachments, nil
}

// Save creates or updates attachment metadata
func (r *GormAttachmentRepository) Save(ctx context.Context, attachment *crm.Attachment) error {
	return r.conn(ctx).Save(models.AttachmentModelFromDomain(attachment)).Error
}

// Delete deletes attachment metadata
func (r *GormAttachmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.AttachmentModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAttachmentRepository implements AttachmentRepository
var _ crm.AttachmentRepository = (*GormAttachmentRepository)(nil)

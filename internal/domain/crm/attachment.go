package crm

import (
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Attachment is file metadata attached to an opportunity. The blob itself
// lives in object storage under StorageKey.
type Attachment struct {
	shared.TenantAggregateRoot
	OpportunityID uuid.UUID
	FileName      string
	ContentType   string
	Size          int64
	StorageKey    string
}

// NewAttachment creates attachment metadata for an uploaded file
func NewAttachment(tenantID, opportunityID uuid.UUID, fileName, contentType string, size int64, storageKey string) (*Attachment, error) {
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if size < 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size cannot be negative")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	return &Attachment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OpportunityID:       opportunityID,
		FileName:            fileName,
		ContentType:         contentType,
		Size:                size,
		StorageKey:          storageKey,
	}, nil
}

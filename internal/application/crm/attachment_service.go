package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
)

// ObjectStorageService defines the interface for object storage operations
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// CreateAttachmentRequest registers an uploaded file on an opportunity
type CreateAttachmentRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"max=100"`
	Size        int64  `json:"size" binding:"min=0"`
}

// CreateAttachmentResponse carries the stored metadata plus the
// presigned URL the client uploads the blob to
type CreateAttachmentResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	UploadURL  string             `json:"upload_url"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

// AttachmentService handles files attached to opportunities. Blobs live
// in object storage; only metadata is persisted here.
type AttachmentService struct {
	attachmentRepo  crm.AttachmentRepository
	opportunityRepo crm.OpportunityRepository
	storage         ObjectStorageService
	urlExpiry       time.Duration
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(attachmentRepo crm.AttachmentRepository, opportunityRepo crm.OpportunityRepository, storage ObjectStorageService, urlExpiry time.Duration) *AttachmentService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &AttachmentService{
		attachmentRepo:  attachmentRepo,
		opportunityRepo: opportunityRepo,
		storage:         storage,
		urlExpiry:       urlExpiry,
	}
}

// Create registers attachment metadata and returns a presigned upload URL
func (s *AttachmentService) Create(ctx context.Context, tenantID, opportunityID uuid.UUID, req CreateAttachmentRequest) (*CreateAttachmentResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("attachments/%s/%s/%s", tenantID, opportunityID, uuid.New())
	attachment, err := crm.NewAttachment(tenantID, opportunityID, req.FileName, req.ContentType, req.Size, storageKey)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	return &CreateAttachmentResponse{
		Attachment: ToAttachmentResponse(attachment),
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ListByOpportunity retrieves attachment metadata with download URLs
func (s *AttachmentService) ListByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]AttachmentResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.FindByOpportunity(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	responses := make([]AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		resp := ToAttachmentResponse(&attachments[i])
		url, _, err := s.storage.GenerateDownloadURL(ctx, attachments[i].StorageKey, s.urlExpiry)
		if err == nil {
			resp.DownloadURL = url
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// GetDownloadURL returns a fresh presigned download URL for an attachment
func (s *AttachmentService) GetDownloadURL(ctx context.Context, tenantID, attachmentID uuid.UUID) (string, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, tenantID, attachmentID)
	if err != nil {
		return "", err
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, attachment.StorageKey, s.urlExpiry)
	return url, err
}

// Delete removes the attachment blob and its metadata. The blob is
// deleted first; if that fails the metadata stays so the file remains
// reachable.
func (s *AttachmentService) Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, tenantID, attachmentID)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, attachment.StorageKey); err != nil {
		return err
	}
	return s.attachmentRepo.Delete(ctx, tenantID, attachmentID)
}

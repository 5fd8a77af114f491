package handler

import (
	"github.com/gin-gonic/gin"

	crmapp "github.com/crm/backend/internal/application/crm"
)

// AttachmentHandler handles attachment API endpoints. File bodies never
// pass through this API; clients upload and download against presigned
// object storage URLs.
type AttachmentHandler struct {
	BaseHandler
	attachmentService *crmapp.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *crmapp.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// RegisterRoutes registers attachment routes
func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crm/opportunities/:id/attachments", h.Create)
	rg.GET("/crm/opportunities/:id/attachments", h.ListByOpportunity)

	attachments := rg.Group("/crm/attachments")
	{
		attachments.GET("/:id/download-url", h.GetDownloadURL)
		attachments.DELETE("/:id", h.Delete)
	}
}

// Create registers attachment metadata and returns a presigned upload URL
func (h *AttachmentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	opportunityID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	var req crmapp.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.attachmentService.Create(c.Request.Context(), tenantID, opportunityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByOpportunity returns an opportunity's attachment metadata
func (h *AttachmentHandler) ListByOpportunity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	opportunityID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	resp, err := h.attachmentService.ListByOpportunity(c.Request.Context(), tenantID, opportunityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetDownloadURL returns a presigned download URL for an attachment
func (h *AttachmentHandler) GetDownloadURL(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	attachmentID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), tenantID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"download_url": url})
}

// Delete removes attachment metadata and the stored object
func (h *AttachmentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	attachmentID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), tenantID, attachmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

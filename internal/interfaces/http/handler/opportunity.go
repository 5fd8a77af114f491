package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/crm/backend/internal/application/crm"
)

// OpportunityHandler handles opportunity API endpoints
type OpportunityHandler struct {
	BaseHandler
	opportunityService *crmapp.OpportunityService
}

// NewOpportunityHandler creates a new OpportunityHandler
func NewOpportunityHandler(opportunityService *crmapp.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// RegisterRoutes registers opportunity routes
func (h *OpportunityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	opportunities := rg.Group("/crm/opportunities")
	{
		opportunities.POST("", h.Create)
		opportunities.GET("", h.List)
		opportunities.GET("/:id", h.GetByID)
		opportunities.PATCH("/:id", h.Update)
		opportunities.DELETE("/:id", h.Delete)
		opportunities.POST("/:id/win", h.Win)
		opportunities.POST("/:id/lose", h.Lose)
		opportunities.POST("/:id/reopen", h.Reopen)
		opportunities.POST("/:id/move-stage", h.MoveStage)
	}
}

// Create creates a new opportunity
func (h *OpportunityHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.opportunityService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns opportunities with filtering and pagination
func (h *OpportunityHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.OpportunityListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, total, err := h.opportunityService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, resp, total, page, pageSize)
}

// GetByID returns a single opportunity with its calls
func (h *OpportunityHandler) GetByID(c *gin.Context) {
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

	resp, err := h.opportunityService.GetByID(c.Request.Context(), tenantID, opportunityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update to an opportunity
func (h *OpportunityHandler) Update(c *gin.Context) {
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

	var req crmapp.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.opportunityService.Update(c.Request.Context(), tenantID, opportunityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an opportunity and its dependent records
func (h *OpportunityHandler) Delete(c *gin.Context) {
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

	if err := h.opportunityService.Delete(c.Request.Context(), tenantID, opportunityID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Win marks an opportunity as won
func (h *OpportunityHandler) Win(c *gin.Context) {
	h.transition(c, h.opportunityService.Win)
}

// Lose marks an opportunity as lost
func (h *OpportunityHandler) Lose(c *gin.Context) {
	h.transition(c, h.opportunityService.Lose)
}

// Reopen returns a decided opportunity to active
func (h *OpportunityHandler) Reopen(c *gin.Context) {
	h.transition(c, h.opportunityService.Reopen)
}

// MoveStage moves an opportunity into a pipeline stage
func (h *OpportunityHandler) MoveStage(c *gin.Context) {
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

	var req crmapp.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.opportunityService.MoveStage(c.Request.Context(), tenantID, opportunityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OpportunityHandler) transition(c *gin.Context, apply func(ctx context.Context, tenantID, opportunityID uuid.UUID) (*crmapp.OpportunityResponse, error)) {
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

	resp, err := apply(c.Request.Context(), tenantID, opportunityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

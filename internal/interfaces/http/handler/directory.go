package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/crm/backend/internal/application/directory"
)

// DirectoryHandler handles salesperson and lead source API endpoints
type DirectoryHandler struct {
	BaseHandler
	salespersonService *directoryapp.SalespersonService
	leadSourceService  *directoryapp.LeadSourceService
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(salespersonService *directoryapp.SalespersonService, leadSourceService *directoryapp.LeadSourceService) *DirectoryHandler {
	return &DirectoryHandler{
		salespersonService: salespersonService,
		leadSourceService:  leadSourceService,
	}
}

// RegisterRoutes registers directory routes
func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	salespeople := rg.Group("/directory/salespeople")
	{
		salespeople.POST("", h.CreateSalesperson)
		salespeople.GET("", h.ListSalespeople)
		salespeople.GET("/:id", h.GetSalesperson)
		salespeople.PUT("/:id", h.UpdateSalesperson)
		salespeople.DELETE("/:id", h.DeleteSalesperson)
	}

	leadSources := rg.Group("/directory/lead-sources")
	{
		leadSources.POST("", h.CreateLeadSource)
		leadSources.GET("", h.ListLeadSources)
		leadSources.PUT("/:id", h.UpdateLeadSource)
		leadSources.DELETE("/:id", h.DeleteLeadSource)
	}
}

// CreateSalesperson adds a salesperson
func (h *DirectoryHandler) CreateSalesperson(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directoryapp.CreateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.salespersonService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListSalespeople returns the tenant's salespeople ordered by name
func (h *DirectoryHandler) ListSalespeople(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.salespersonService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetSalesperson returns a single salesperson
func (h *DirectoryHandler) GetSalesperson(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	salespersonID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid salesperson ID")
		return
	}

	resp, err := h.salespersonService.GetByID(c.Request.Context(), tenantID, salespersonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateSalesperson rewrites a salesperson
func (h *DirectoryHandler) UpdateSalesperson(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	salespersonID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid salesperson ID")
		return
	}

	var req directoryapp.UpdateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.salespersonService.Update(c.Request.Context(), tenantID, salespersonID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteSalesperson removes a salesperson. Opportunities that pointed
// at them are unassigned in the same transaction; the response reports
// how many were rewritten.
func (h *DirectoryHandler) DeleteSalesperson(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	salespersonID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid salesperson ID")
		return
	}

	result, err := h.salespersonService.Delete(c.Request.Context(), tenantID, salespersonID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateLeadSource adds a lead source
func (h *DirectoryHandler) CreateLeadSource(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directoryapp.CreateLeadSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.leadSourceService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListLeadSources returns the tenant's lead sources ordered by name
func (h *DirectoryHandler) ListLeadSources(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.leadSourceService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateLeadSource renames a lead source
func (h *DirectoryHandler) UpdateLeadSource(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	leadSourceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lead source ID")
		return
	}

	var req directoryapp.UpdateLeadSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.leadSourceService.Update(c.Request.Context(), tenantID, leadSourceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteLeadSource removes a lead source. Opportunities still
// referencing it are reassigned to the placeholder source in the same
// transaction.
func (h *DirectoryHandler) DeleteLeadSource(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	leadSourceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lead source ID")
		return
	}

	result, err := h.leadSourceService.Delete(c.Request.Context(), tenantID, leadSourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

package handler

import (
	"github.com/gin-gonic/gin"

	crmapp "github.com/crm/backend/internal/application/crm"
)

// CallHandler handles call API endpoints
type CallHandler struct {
	BaseHandler
	callService *crmapp.CallService
}

// NewCallHandler creates a new CallHandler
func NewCallHandler(callService *crmapp.CallService) *CallHandler {
	return &CallHandler{callService: callService}
}

// RegisterRoutes registers call routes. Creation and listing hang off
// the parent opportunity; updates address the call directly.
func (h *CallHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crm/opportunities/:id/calls", h.Create)
	rg.GET("/crm/opportunities/:id/calls", h.ListByOpportunity)

	calls := rg.Group("/crm/calls")
	{
		calls.GET("/:id", h.GetByID)
		calls.PATCH("/:id", h.Update)
		calls.DELETE("/:id", h.Delete)
		calls.POST("/:id/attendance", h.RecordAttendance)
	}
}

// Create schedules a call on an opportunity
func (h *CallHandler) Create(c *gin.Context) {
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

	var req crmapp.CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.callService.Create(c.Request.Context(), tenantID, opportunityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByOpportunity returns an opportunity's calls in scheduled order
func (h *CallHandler) ListByOpportunity(c *gin.Context) {
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

	resp, err := h.callService.ListByOpportunity(c.Request.Context(), tenantID, opportunityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns a single call
func (h *CallHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	callID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid call ID")
		return
	}

	resp, err := h.callService.GetByID(c.Request.Context(), tenantID, callID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update changes a call's schedule
func (h *CallHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	callID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid call ID")
		return
	}

	var req crmapp.UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.callService.Update(c.Request.Context(), tenantID, callID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordAttendance records the call outcome. Passing attended=null
// resets it to pending.
func (h *CallHandler) RecordAttendance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	callID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid call ID")
		return
	}

	var req crmapp.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.callService.RecordAttendance(c.Request.Context(), tenantID, callID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a call
func (h *CallHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	callID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid call ID")
		return
	}

	if err := h.callService.Delete(c.Request.Context(), tenantID, callID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"

	dashboardapp "github.com/crm/backend/internal/application/dashboard"
)

// DashboardHandler handles the dashboard metrics endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/metrics", h.GetMetrics)
}

// GetMetrics computes KPIs, month-over-month changes and per-call-type
// metrics under the requested filter state
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query dashboardapp.MetricsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.dashboardService.GetMetrics(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

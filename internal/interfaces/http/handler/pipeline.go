package handler

import (
	"github.com/gin-gonic/gin"

	pipelineapp "github.com/crm/backend/internal/application/pipeline"
)

// PipelineHandler handles pipeline and kanban board API endpoints
type PipelineHandler struct {
	BaseHandler
	pipelineService *pipelineapp.Service
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(pipelineService *pipelineapp.Service) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService}
}

// RegisterRoutes registers pipeline routes
func (h *PipelineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pipelines := rg.Group("/pipelines")
	{
		pipelines.POST("", h.Create)
		pipelines.GET("", h.List)
		pipelines.GET("/:id", h.GetByID)
		pipelines.PUT("/:id", h.Update)
		pipelines.DELETE("/:id", h.Delete)
		pipelines.POST("/:id/set-default", h.SetDefault)
		pipelines.GET("/:id/board", h.Board)

		pipelines.POST("/:id/stages", h.AddStage)
		pipelines.PUT("/:id/stages/:stageId", h.UpdateStage)
		pipelines.DELETE("/:id/stages/:stageId", h.RemoveStage)
		pipelines.POST("/:id/stages/reorder", h.ReorderStages)
	}
}

// Create creates a pipeline
func (h *PipelineHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req pipelineapp.CreatePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.pipelineService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the tenant's pipelines
func (h *PipelineHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.pipelineService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID returns a pipeline with its stages in display order
func (h *PipelineHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	resp, err := h.pipelineService.GetByID(c.Request.Context(), tenantID, pipelineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update renames a pipeline
func (h *PipelineHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	var req pipelineapp.UpdatePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.pipelineService.Update(c.Request.Context(), tenantID, pipelineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a pipeline. Opportunities keep running; their stage
// pointers are cleared by the database.
func (h *PipelineHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	if err := h.pipelineService.Delete(c.Request.Context(), tenantID, pipelineID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefault makes this pipeline the tenant default
func (h *PipelineHandler) SetDefault(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	if err := h.pipelineService.SetDefault(c.Request.Context(), tenantID, pipelineID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Board returns the kanban view: stages as columns with their
// opportunities and per-column revenue totals
func (h *PipelineHandler) Board(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	resp, err := h.pipelineService.Board(c.Request.Context(), tenantID, pipelineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddStage appends a stage to a pipeline
func (h *PipelineHandler) AddStage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	var req pipelineapp.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.pipelineService.AddStage(c.Request.Context(), tenantID, pipelineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateStage rewrites a stage's name, color and final flag
func (h *PipelineHandler) UpdateStage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}
	stageID, err := parseUUIDParam(c, "stageId")
	if err != nil {
		h.BadRequest(c, "Invalid stage ID")
		return
	}

	var req pipelineapp.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.pipelineService.UpdateStage(c.Request.Context(), tenantID, pipelineID, stageID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveStage deletes a stage from a pipeline
func (h *PipelineHandler) RemoveStage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}
	stageID, err := parseUUIDParam(c, "stageId")
	if err != nil {
		h.BadRequest(c, "Invalid stage ID")
		return
	}

	if err := h.pipelineService.RemoveStage(c.Request.Context(), tenantID, pipelineID, stageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ReorderStages applies a full stage ordering
func (h *PipelineHandler) ReorderStages(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	pipelineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid pipeline ID")
		return
	}

	var req pipelineapp.ReorderStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.pipelineService.ReorderStages(c.Request.Context(), tenantID, pipelineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

package handler

import (
	"github.com/gin-gonic/gin"

	crmapp "github.com/crm/backend/internal/application/crm"
)

// NoteHandler handles note API endpoints
type NoteHandler struct {
	BaseHandler
	noteService *crmapp.NoteService
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *crmapp.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// RegisterRoutes registers note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crm/opportunities/:id/notes", h.Create)
	rg.GET("/crm/opportunities/:id/notes", h.ListByOpportunity)

	notes := rg.Group("/crm/notes")
	{
		notes.PATCH("/:id", h.Update)
		notes.DELETE("/:id", h.Delete)
	}
}

// Create adds a note to an opportunity
func (h *NoteHandler) Create(c *gin.Context) {
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

	var req crmapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.noteService.Create(c.Request.Context(), tenantID, opportunityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByOpportunity returns an opportunity's notes, newest first
func (h *NoteHandler) ListByOpportunity(c *gin.Context) {
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

	resp, err := h.noteService.ListByOpportunity(c.Request.Context(), tenantID, opportunityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update rewrites a note's title and body
func (h *NoteHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	var req crmapp.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.noteService.Update(c.Request.Context(), tenantID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a note
func (h *NoteHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid note ID")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), tenantID, noteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

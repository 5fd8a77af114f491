package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/crm"
)

// =============================================================================
// Opportunity DTOs
// =============================================================================

// CreateOpportunityRequest represents a request to create a new opportunity
type CreateOpportunityRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	SalespersonID *uuid.UUID       `json:"salesperson_id"`
	LeadSource    string           `json:"lead_source" binding:"max=100"`
	Revenue       *decimal.Decimal `json:"revenue"`
	CashCollected *decimal.Decimal `json:"cash_collected"`
	StageID       *uuid.UUID       `json:"stage_id"`
}

// UpdateOpportunityRequest represents a partial update to an opportunity
type UpdateOpportunityRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	SalespersonID    *uuid.UUID       `json:"salesperson_id"`
	ClearSalesperson bool             `json:"clear_salesperson"`
	LeadSource       *string          `json:"lead_source" binding:"omitempty,max=100"`
	Revenue          *decimal.Decimal `json:"revenue"`
	CashCollected    *decimal.Decimal `json:"cash_collected"`
	ProposalStatus   *string          `json:"proposal_status" binding:"omitempty,oneof=none created pitched"`
}

// MoveStageRequest represents a kanban drop: move an opportunity into a stage
type MoveStageRequest struct {
	StageID uuid.UUID `json:"stage_id" binding:"required"`
}

// OpportunityResponse represents an opportunity in API responses
type OpportunityResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	SalespersonID     *uuid.UUID      `json:"salesperson_id"`
	LeadSource        string          `json:"lead_source"`
	Revenue           decimal.Decimal `json:"revenue"`
	CashCollected     decimal.Decimal `json:"cash_collected"`
	Status            string          `json:"status"`
	ProposalStatus    string          `json:"proposal_status"`
	StageID           *uuid.UUID      `json:"stage_id"`
	LastInteractionAt *time.Time      `json:"last_interaction_at"`
	Calls             []CallResponse  `json:"calls"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// OpportunityListFilter represents filter options for the opportunity list
type OpportunityListFilter struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=active won lost"`
	SalespersonID string `form:"salesperson_id"`
	LeadSource    string `form:"lead_source"`
	StageID       string `form:"stage_id"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOpportunityResponse converts a domain opportunity to a response DTO
func ToOpportunityResponse(o *crm.Opportunity) OpportunityResponse {
	calls := make([]CallResponse, 0, len(o.Calls))
	for i := range o.Calls {
		calls = append(calls, ToCallResponse(&o.Calls[i]))
	}
	return OpportunityResponse{
		ID:                o.ID,
		Name:              o.Name,
		SalespersonID:     o.SalespersonID,
		LeadSource:        o.LeadSource,
		Revenue:           o.Revenue,
		CashCollected:     o.CashCollected,
		Status:            string(o.Status),
		ProposalStatus:    string(o.ProposalStatus),
		StageID:           o.StageID,
		LastInteractionAt: o.LastInteractionAt,
		Calls:             calls,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Version:           o.Version,
	}
}

// =============================================================================
// Call DTOs
// =============================================================================

// CreateCallRequest represents a request to schedule a call
type CreateCallRequest struct {
	Type     string    `json:"type" binding:"required,oneof=discovery_1 discovery_2 discovery_3 closing_1 closing_2 closing_3"`
	Date     time.Time `json:"date" binding:"required"`
	Duration int       `json:"duration" binding:"omitempty,gt=0"`
	Link     *string   `json:"link" binding:"omitempty,url,max=500"`
}

// UpdateCallRequest represents a request to update a call's schedule
type UpdateCallRequest struct {
	Type     *string    `json:"type" binding:"omitempty,oneof=discovery_1 discovery_2 discovery_3 closing_1 closing_2 closing_3"`
	Date     *time.Time `json:"date"`
	Duration *int       `json:"duration" binding:"omitempty,gt=0"`
	Link     *string    `json:"link" binding:"omitempty,url,max=500"`
}

// RecordAttendanceRequest records the outcome of a call. A nil Attended
// resets the outcome to pending.
type RecordAttendanceRequest struct {
	Attended *bool `json:"attended"`
}

// CallResponse represents a call in API responses
type CallResponse struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Type          string    `json:"type"`
	TypeDisplay   string    `json:"type_display"`
	Number        int       `json:"number"`
	Date          time.Time `json:"date"`
	Duration      int       `json:"duration"`
	Attended      *bool     `json:"attended"`
	Link          *string   `json:"link"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToCallResponse converts a domain call to a response DTO
func ToCallResponse(c *crm.Call) CallResponse {
	return CallResponse{
		ID:            c.ID,
		OpportunityID: c.OpportunityID,
		Type:          string(c.Type),
		TypeDisplay:   c.Type.DisplayName(),
		Number:        c.Number,
		Date:          c.Date,
		Duration:      c.Duration,
		Attended:      c.Attended,
		Link:          c.Link,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// =============================================================================
// Note DTOs
// =============================================================================

// CreateNoteRequest represents a request to add a note to an opportunity
type CreateNoteRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Body  string `json:"body"`
}

// UpdateNoteRequest represents a request to update a note
type UpdateNoteRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Body  string `json:"body"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToNoteResponse converts a domain note to a response DTO
func ToNoteResponse(n *crm.Note) NoteResponse {
	return NoteResponse{
		ID:            n.ID,
		OpportunityID: n.OpportunityID,
		Title:         n.Title,
		Body:          n.Body,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

// =============================================================================
// Contact DTOs
// =============================================================================

// CreateContactRequest represents a request to add a contact to an opportunity
type CreateContactRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Position string `json:"position" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
	LinkedIn string `json:"linkedin" binding:"omitempty,url,max=500"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Position string `json:"position" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
	LinkedIn string `json:"linkedin" binding:"omitempty,url,max=500"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LinkedIn      string    `json:"linkedin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToContactResponse converts a domain contact to a response DTO
func ToContactResponse(c *crm.Contact) ContactResponse {
	return ContactResponse{
		ID:            c.ID,
		OpportunityID: c.OpportunityID,
		Name:          c.Name,
		Position:      c.Position,
		Email:         c.Email,
		Phone:         c.Phone,
		LinkedIn:      c.LinkedIn,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// =============================================================================
// Attachment DTOs
// =============================================================================

// AttachmentResponse represents attachment metadata in API responses
type AttachmentResponse struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	DownloadURL   string    `json:"download_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToAttachmentResponse converts domain attachment metadata to a response DTO
func ToAttachmentResponse(a *crm.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:            a.ID,
		OpportunityID: a.OpportunityID,
		FileName:      a.FileName,
		ContentType:   a.ContentType,
		Size:          a.Size,
		CreatedAt:     a.CreatedAt,
	}
}

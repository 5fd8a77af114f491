package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/directory"
)

// CreateSalespersonRequest represents a request to add a salesperson
type CreateSalespersonRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
}

// UpdateSalespersonRequest represents a request to update a salesperson
type UpdateSalespersonRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
}

// SalespersonResponse represents a salesperson in API responses
type SalespersonResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSalespersonResponse converts a domain salesperson to a response DTO
func ToSalespersonResponse(s *directory.Salesperson) SalespersonResponse {
	return SalespersonResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateLeadSourceRequest represents a request to add a lead source
type CreateLeadSourceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateLeadSourceRequest represents a request to rename a lead source
type UpdateLeadSourceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// LeadSourceResponse represents a lead source in API responses
type LeadSourceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToLeadSourceResponse converts a domain lead source to a response DTO
func ToLeadSourceResponse(l *directory.LeadSource) LeadSourceResponse {
	return LeadSourceResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
}

// DeleteResult reports a compensating delete: how many dependent
// opportunities were rewritten before the parent was removed
type DeleteResult struct {
	ReassignedOpportunities int64 `json:"reassigned_opportunities"`
}

package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Note is a free-form text record attached to an opportunity
type Note struct {
	shared.TenantAggregateRoot
	OpportunityID uuid.UUID
	Title         string
	Body          string
}

// NewNote creates a note on an opportunity
func NewNote(tenantID, opportunityID uuid.UUID, title, body string) (*Note, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_NOTE_TITLE", "Note title cannot be empty")
	}
	return &Note{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OpportunityID:       opportunityID,
		Title:               title,
		Body:                body,
	}, nil
}

// Update updates the note's title and body
func (n *Note) Update(title, body string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_NOTE_TITLE", "Note title cannot be empty")
	}
	n.Title = title
	n.Body = body
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
	return nil
}

package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// OpportunityRepository manages opportunity persistence
type OpportunityRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Opportunity, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Opportunity, error)
	FindByStage(ctx context.Context, tenantID, stageID uuid.UUID) ([]Opportunity, error)
	Save(ctx context.Context, opportunity *Opportunity) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ClearSalesperson nulls salesperson_id on every opportunity owned by
	// the given salesperson. Used as the compensating step before a
	// salesperson delete.
	ClearSalesperson(ctx context.Context, tenantID, salespersonID uuid.UUID) (int64, error)

	// ReassignLeadSource rewrites lead_source from one value to another on
	// every matching opportunity. Used as the compensating step before a
	// lead source delete.
	ReassignLeadSource(ctx context.Context, tenantID uuid.UUID, from, to string) (int64, error)

	// MoveToStage atomically sets stage_id and last_interaction_at on a
	// single opportunity. Concurrent moves resolve last-write-wins by
	// commit order.
	MoveToStage(ctx context.Context, tenantID, id, stageID uuid.UUID) error
}

// CallRepository manages call persistence
type CallRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Call, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Call, error)
	FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]Call, error)
	Save(ctx context.Context, call *Call) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// MaxNumber returns the highest call number assigned on an
	// opportunity, 0 if it has no calls
	MaxNumber(ctx context.Context, tenantID, opportunityID uuid.UUID) (int, error)

	// CreateWithNextNumber inserts the call with number = max+1 computed
	// inside a transaction holding a row lock on the parent opportunity
	CreateWithNextNumber(ctx context.Context, call *Call) error
}

// NoteRepository manages note persistence
type NoteRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Note, error)
	FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]Note, error)
	Save(ctx context.Context, note *Note) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ContactRepository manages contact persistence
type ContactRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Contact, error)
	FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]Contact, error)
	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// AttachmentRepository manages attachment metadata persistence
type AttachmentRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Attachment, error)
	FindByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]Attachment, error)
	Save(ctx context.Context, attachment *Attachment) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

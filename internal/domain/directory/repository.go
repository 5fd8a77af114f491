package directory

import (
	"context"

	"github.com/google/uuid"
)

// SalespersonRepository manages salesperson persistence
type SalespersonRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Salesperson, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Salesperson, error)
	Save(ctx context.Context, salesperson *Salesperson) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// LeadSourceRepository manages lead source persistence
type LeadSourceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*LeadSource, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*LeadSource, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]LeadSource, error)
	Save(ctx context.Context, leadSource *LeadSource) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

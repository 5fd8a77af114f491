package pipeline

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages pipeline persistence. Stages are persisted as part
// of their pipeline aggregate.
type Repository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Pipeline, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Pipeline, error)
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*Pipeline, error)
	Save(ctx context.Context, pipeline *Pipeline) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// SetDefault marks one pipeline as the tenant default and clears the
	// flag on all others, in a single transaction
	SetDefault(ctx context.Context, tenantID, id uuid.UUID) error
}

package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// LeadSource is a user-managed channel through which opportunities
// originate. Opportunities store the source name as a plain string, so
// renames and deletes rewrite the referencing opportunities.
type LeadSource struct {
	shared.TenantAggregateRoot
	Name string
}

// NewLeadSource creates a new lead source
func NewLeadSource(tenantID uuid.UUID, name string) (*LeadSource, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LEAD_SOURCE_NAME", "Lead source name cannot be empty")
	}
	return &LeadSource{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// Rename changes the lead source name
func (l *LeadSource) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_LEAD_SOURCE_NAME", "Lead source name cannot be empty")
	}
	l.Name = name
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

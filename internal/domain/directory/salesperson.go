package directory

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Salesperson is a member of the sales team that opportunities are
// assigned to
type Salesperson struct {
	shared.TenantAggregateRoot
	Name  string
	Email string
}

// NewSalesperson creates a new salesperson
func NewSalesperson(tenantID uuid.UUID, name, email string) (*Salesperson, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SALESPERSON_NAME", "Salesperson name cannot be empty")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	return &Salesperson{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               email,
	}, nil
}

// Update updates the salesperson's details
func (s *Salesperson) Update(name, email string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SALESPERSON_NAME", "Salesperson name cannot be empty")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	s.Name = name
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

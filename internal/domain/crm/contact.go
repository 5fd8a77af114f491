package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Contact is a person associated with an opportunity
type Contact struct {
	shared.TenantAggregateRoot
	OpportunityID uuid.UUID
	Name          string
	Position      string
	Email         string
	Phone         string
	LinkedIn      string
}

// NewContact creates a contact on an opportunity
func NewContact(tenantID, opportunityID uuid.UUID, name, position, email, phone, linkedIn string) (*Contact, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot be empty")
	}
	return &Contact{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OpportunityID:       opportunityID,
		Name:                name,
		Position:            position,
		Email:               email,
		Phone:               phone,
		LinkedIn:            linkedIn,
	}, nil
}

// Update updates the contact's details
func (c *Contact) Update(name, position, email, phone, linkedIn string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot be empty")
	}
	c.Name = name
	c.Position = position
	c.Email = email
	c.Phone = phone
	c.LinkedIn = linkedIn
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

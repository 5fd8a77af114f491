package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
)

// ContactService handles contacts attached to opportunities
type ContactService struct {
	contactRepo     crm.ContactRepository
	opportunityRepo crm.OpportunityRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo crm.ContactRepository, opportunityRepo crm.OpportunityRepository) *ContactService {
	return &ContactService{
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
	}
}

// Create adds a contact to an opportunity
func (s *ContactService) Create(ctx context.Context, tenantID, opportunityID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}

	contact, err := crm.NewContact(tenantID, opportunityID, req.Name, req.Position, req.Email, req.Phone, req.LinkedIn)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// ListByOpportunity retrieves all contacts on an opportunity
func (s *ContactService) ListByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]ContactResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.FindByOpportunity(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses, nil
}

// Update updates a contact
func (s *ContactService) Update(ctx context.Context, tenantID, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}
	if err := contact.Update(req.Name, req.Position, req.Email, req.Phone, req.LinkedIn); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, tenantID, contactID uuid.UUID) error {
	if _, err := s.contactRepo.FindByID(ctx, tenantID, contactID); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, tenantID, contactID)
}

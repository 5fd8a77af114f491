package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
)

// NoteService handles notes attached to opportunities
type NoteService struct {
	noteRepo        crm.NoteRepository
	opportunityRepo crm.OpportunityRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo crm.NoteRepository, opportunityRepo crm.OpportunityRepository) *NoteService {
	return &NoteService{
		noteRepo:        noteRepo,
		opportunityRepo: opportunityRepo,
	}
}

// Create adds a note to an opportunity
func (s *NoteService) Create(ctx context.Context, tenantID, opportunityID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}

	note, err := crm.NewNote(tenantID, opportunityID, req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	response := ToNoteResponse(note)
	return &response, nil
}

// ListByOpportunity retrieves all notes on an opportunity
func (s *NoteService) ListByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]NoteResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.FindByOpportunity(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	responses := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, ToNoteResponse(&notes[i]))
	}
	return responses, nil
}

// Update updates a note
func (s *NoteService) Update(ctx context.Context, tenantID, noteID uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}
	if err := note.Update(req.Title, req.Body); err != nil {
		return nil, err
	}
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	response := ToNoteResponse(note)
	return &response, nil
}

// Delete removes a note
func (s *NoteService) Delete(ctx context.Context, tenantID, noteID uuid.UUID) error {
	if _, err := s.noteRepo.FindByID(ctx, tenantID, noteID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, tenantID, noteID)
}

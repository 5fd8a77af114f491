package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/infrastructure/cache"
)

// CallService handles call scheduling and attendance tracking
type CallService struct {
	callRepo        crm.CallRepository
	opportunityRepo crm.OpportunityRepository
	cache           cache.CollectionCache
	strictNumbering bool
}

// NewCallService creates a new CallService. With strict numbering the
// per-opportunity call number is assigned inside a transaction holding a
// row lock, so concurrent creations cannot collide; without it the
// number is read-then-written, preserving the original racy behavior.
func NewCallService(callRepo crm.CallRepository, opportunityRepo crm.OpportunityRepository, collectionCache cache.CollectionCache, strictNumbering bool) *CallService {
	return &CallService{
		callRepo:        callRepo,
		opportunityRepo: opportunityRepo,
		cache:           collectionCache,
		strictNumbering: strictNumbering,
	}
}

// Create schedules a call on an opportunity, assigning the next number
// in the opportunity's 1-based sequence
func (s *CallService) Create(ctx context.Context, tenantID, opportunityID uuid.UUID, req CreateCallRequest) (*CallResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}

	if s.strictNumbering {
		// number assigned by the repository inside the transaction;
		// the placeholder passes constructor validation
		call, err := crm.NewCall(tenantID, opportunityID, crm.CallType(req.Type), 1, req.Date, req.Duration, req.Link)
		if err != nil {
			return nil, err
		}
		if err := s.callRepo.CreateWithNextNumber(ctx, call); err != nil {
			return nil, err
		}
		s.cache.Invalidate(ctx, tenantID, cache.CollectionCalls, cache.CollectionOpportunities)
		response := ToCallResponse(call)
		return &response, nil
	}

	maxNumber, err := s.callRepo.MaxNumber(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}
	call, err := crm.NewCall(tenantID, opportunityID, crm.CallType(req.Type), maxNumber+1, req.Date, req.Duration, req.Link)
	if err != nil {
		return nil, err
	}
	if err := s.callRepo.Save(ctx, call); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionCalls, cache.CollectionOpportunities)

	response := ToCallResponse(call)
	return &response, nil
}

// GetByID retrieves a call by ID
func (s *CallService) GetByID(ctx context.Context, tenantID, callID uuid.UUID) (*CallResponse, error) {
	call, err := s.callRepo.FindByID(ctx, tenantID, callID)
	if err != nil {
		return nil, err
	}
	response := ToCallResponse(call)
	return &response, nil
}

// ListByOpportunity retrieves all calls on an opportunity
func (s *CallService) ListByOpportunity(ctx context.Context, tenantID, opportunityID uuid.UUID) ([]CallResponse, error) {
	if _, err := s.opportunityRepo.FindByID(ctx, tenantID, opportunityID); err != nil {
		return nil, err
	}
	calls, err := s.callRepo.FindByOpportunity(ctx, tenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	responses := make([]CallResponse, 0, len(calls))
	for i := range calls {
		responses = append(responses, ToCallResponse(&calls[i]))
	}
	return responses, nil
}

// Update updates a call's schedule details
func (s *CallService) Update(ctx context.Context, tenantID, callID uuid.UUID, req UpdateCallRequest) (*CallResponse, error) {
	call, err := s.callRepo.FindByID(ctx, tenantID, callID)
	if err != nil {
		return nil, err
	}

	callType := call.Type
	if req.Type != nil {
		callType = crm.CallType(*req.Type)
	}
	date := call.Date
	if req.Date != nil {
		date = *req.Date
	}
	duration := call.Duration
	if req.Duration != nil {
		duration = *req.Duration
	}
	link := call.Link
	if req.Link != nil {
		link = req.Link
	}

	if err := call.Update(callType, date, duration, link); err != nil {
		return nil, err
	}
	if err := s.callRepo.Save(ctx, call); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionCalls, cache.CollectionOpportunities)

	response := ToCallResponse(call)
	return &response, nil
}

// RecordAttendance records a call's outcome
func (s *CallService) RecordAttendance(ctx context.Context, tenantID, callID uuid.UUID, req RecordAttendanceRequest) (*CallResponse, error) {
	call, err := s.callRepo.FindByID(ctx, tenantID, callID)
	if err != nil {
		return nil, err
	}

	call.RecordAttendance(req.Attended)
	if err := s.callRepo.Save(ctx, call); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionCalls, cache.CollectionOpportunities)

	response := ToCallResponse(call)
	return &response, nil
}

// Delete removes a call
func (s *CallService) Delete(ctx context.Context, tenantID, callID uuid.UUID) error {
	if _, err := s.callRepo.FindByID(ctx, tenantID, callID); err != nil {
		return err
	}
	if err := s.callRepo.Delete(ctx, tenantID, callID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, tenantID, cache.CollectionCalls, cache.CollectionOpportunities)
	return nil
}

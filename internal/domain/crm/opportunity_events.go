package crm

import (
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Event types for the CRM context
const (
	EventOpportunityCreated       = "crm.opportunity.created"
	EventOpportunityStatusChanged = "crm.opportunity.status_changed"
	EventOpportunityStageMoved    = "crm.opportunity.stage_moved"
	EventCallScheduled            = "crm.call.scheduled"
)

// OpportunityCreatedEvent is raised when a new opportunity is created
type OpportunityCreatedEvent struct {
	shared.BaseDomainEvent
	Name       string `json:"name"`
	LeadSource string `json:"lead_source"`
}

// NewOpportunityCreatedEvent creates an OpportunityCreatedEvent
func NewOpportunityCreatedEvent(o *Opportunity) *OpportunityCreatedEvent {
	return &OpportunityCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOpportunityCreated, "Opportunity", o.ID, o.TenantID),
		Name:            o.Name,
		LeadSource:      o.LeadSource,
	}
}

// OpportunityStatusChangedEvent is raised on win/lose/reopen transitions
type OpportunityStatusChangedEvent struct {
	shared.BaseDomainEvent
	Status OpportunityStatus `json:"status"`
}

// NewOpportunityStatusChangedEvent creates an OpportunityStatusChangedEvent
func NewOpportunityStatusChangedEvent(o *Opportunity, status OpportunityStatus) *OpportunityStatusChangedEvent {
	return &OpportunityStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOpportunityStatusChanged, "Opportunity", o.ID, o.TenantID),
		Status:          status,
	}
}

// OpportunityStageMovedEvent is raised when an opportunity changes pipeline stage
type OpportunityStageMovedEvent struct {
	shared.BaseDomainEvent
	FromStageID *uuid.UUID `json:"from_stage_id"`
	ToStageID   uuid.UUID  `json:"to_stage_id"`
}

// NewOpportunityStageMovedEvent creates an OpportunityStageMovedEvent
func NewOpportunityStageMovedEvent(o *Opportunity, from *uuid.UUID, to uuid.UUID) *OpportunityStageMovedEvent {
	return &OpportunityStageMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOpportunityStageMoved, "Opportunity", o.ID, o.TenantID),
		FromStageID:     from,
		ToStageID:       to,
	}
}

// CallScheduledEvent is raised when a call is scheduled on an opportunity
type CallScheduledEvent struct {
	shared.BaseDomainEvent
	CallType CallType `json:"call_type"`
	Number   int      `json:"number"`
}

// NewCallScheduledEvent creates a CallScheduledEvent
func NewCallScheduledEvent(c *Call) *CallScheduledEvent {
	return &CallScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCallScheduled, "Call", c.ID, c.TenantID),
		CallType:        c.Type,
		Number:          c.Number,
	}
}

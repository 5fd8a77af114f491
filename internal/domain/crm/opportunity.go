package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/shared"
)

// OpportunityStatus is the lifecycle status of a deal
type OpportunityStatus string

const (
	OpportunityStatusActive OpportunityStatus = "active"
	OpportunityStatusWon    OpportunityStatus = "won"
	OpportunityStatusLost   OpportunityStatus = "lost"
)

// IsValid checks if the status is a known value
func (s OpportunityStatus) IsValid() bool {
	switch s {
	case OpportunityStatusActive, OpportunityStatusWon, OpportunityStatusLost:
		return true
	}
	return false
}

// ProposalStatus tracks how far a proposal has progressed
type ProposalStatus string

const (
	ProposalStatusNone    ProposalStatus = "none"
	ProposalStatusCreated ProposalStatus = "created"
	ProposalStatusPitched ProposalStatus = "pitched"
)

// IsValid checks if the proposal status is a known value
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusNone, ProposalStatusCreated, ProposalStatusPitched:
		return true
	}
	return false
}

// Opportunity is a sales deal tracked through its lifecycle.
// Revenue is the contracted value; CashCollected is what has actually
// been received and carries no upper bound relative to Revenue.
type Opportunity struct {
	shared.TenantAggregateRoot
	Name              string
	SalespersonID     *uuid.UUID
	LeadSource        string
	Revenue           decimal.Decimal
	CashCollected     decimal.Decimal
	Status            OpportunityStatus
	ProposalStatus    ProposalStatus
	StageID           *uuid.UUID
	LastInteractionAt *time.Time
	Calls             []Call
}

// NewOpportunity creates a new active opportunity
func NewOpportunity(tenantID uuid.UUID, name, leadSource string, revenue, cashCollected decimal.Decimal) (*Opportunity, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_OPPORTUNITY_NAME", "Opportunity name cannot be empty")
	}
	if revenue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_REVENUE", "Revenue cannot be negative")
	}
	if cashCollected.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CASH_COLLECTED", "Cash collected cannot be negative")
	}

	opp := &Opportunity{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		LeadSource:          leadSource,
		Revenue:             revenue,
		CashCollected:       cashCollected,
		Status:              OpportunityStatusActive,
		ProposalStatus:      ProposalStatusNone,
	}

	opp.AddDomainEvent(NewOpportunityCreatedEvent(opp))
	return opp, nil
}

// Update updates the opportunity's basic fields
func (o *Opportunity) Update(name, leadSource string, revenue, cashCollected decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_OPPORTUNITY_NAME", "Opportunity name cannot be empty")
	}
	if revenue.IsNegative() {
		return shared.NewDomainError("INVALID_REVENUE", "Revenue cannot be negative")
	}
	if cashCollected.IsNegative() {
		return shared.NewDomainError("INVALID_CASH_COLLECTED", "Cash collected cannot be negative")
	}

	o.Name = name
	o.LeadSource = leadSource
	o.Revenue = revenue
	o.CashCollected = cashCollected
	o.touch()
	return nil
}

// AssignSalesperson sets the owning salesperson (nil clears the assignment)
func (o *Opportunity) AssignSalesperson(salespersonID *uuid.UUID) {
	o.SalespersonID = salespersonID
	o.touch()
}

// SetProposalStatus updates the proposal status
func (o *Opportunity) SetProposalStatus(status ProposalStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PROPOSAL_STATUS", "Unknown proposal status")
	}
	o.ProposalStatus = status
	o.touch()
	return nil
}

// Win marks the opportunity as won
func (o *Opportunity) Win() error {
	if o.Status == OpportunityStatusWon {
		return shared.NewDomainError("OPPORTUNITY_ALREADY_WON", "Opportunity is already won")
	}
	o.Status = OpportunityStatusWon
	o.recordInteraction()
	o.touch()
	o.AddDomainEvent(NewOpportunityStatusChangedEvent(o, OpportunityStatusWon))
	return nil
}

// Lose marks the opportunity as lost
func (o *Opportunity) Lose() error {
	if o.Status == OpportunityStatusLost {
		return shared.NewDomainError("OPPORTUNITY_ALREADY_LOST", "Opportunity is already lost")
	}
	o.Status = OpportunityStatusLost
	o.recordInteraction()
	o.touch()
	o.AddDomainEvent(NewOpportunityStatusChangedEvent(o, OpportunityStatusLost))
	return nil
}

// Reopen returns a decided opportunity to the active status
func (o *Opportunity) Reopen() error {
	if o.Status == OpportunityStatusActive {
		return shared.NewDomainError("OPPORTUNITY_ALREADY_ACTIVE", "Opportunity is already active")
	}
	o.Status = OpportunityStatusActive
	o.recordInteraction()
	o.touch()
	o.AddDomainEvent(NewOpportunityStatusChangedEvent(o, OpportunityStatusActive))
	return nil
}

// MoveToStage moves the opportunity to a pipeline stage and stamps the
// interaction time. Any stage may move to any other stage; final stages
// are advisory only.
func (o *Opportunity) MoveToStage(stageID uuid.UUID) {
	from := o.StageID
	stage := stageID
	o.StageID = &stage
	o.recordInteraction()
	o.touch()
	o.AddDomainEvent(NewOpportunityStageMovedEvent(o, from, stageID))
}

// ClearStage removes the opportunity from its pipeline stage
func (o *Opportunity) ClearStage() {
	o.StageID = nil
	o.touch()
}

// ClearLeadSource resets the lead source to the given placeholder
func (o *Opportunity) ClearLeadSource(placeholder string) {
	o.LeadSource = placeholder
	o.touch()
}

// IsWon reports whether the deal was won
func (o *Opportunity) IsWon() bool {
	return o.Status == OpportunityStatusWon
}

// IsDecided reports whether the deal has a final outcome
func (o *Opportunity) IsDecided() bool {
	return o.Status == OpportunityStatusWon || o.Status == OpportunityStatusLost
}

// NextCallNumber returns the number the next call on this opportunity
// should receive, based on the loaded calls
func (o *Opportunity) NextCallNumber() int {
	max := 0
	for i := range o.Calls {
		if o.Calls[i].Number > max {
			max = o.Calls[i].Number
		}
	}
	return max + 1
}

func (o *Opportunity) recordInteraction() {
	now := time.Now()
	o.LastInteractionAt = &now
}

func (o *Opportunity) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

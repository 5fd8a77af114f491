package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// CallType is one of the six fixed call stages
type CallType string

const (
	CallTypeDiscovery1 CallType = "discovery_1"
	CallTypeDiscovery2 CallType = "discovery_2"
	CallTypeDiscovery3 CallType = "discovery_3"
	CallTypeClosing1   CallType = "closing_1"
	CallTypeClosing2   CallType = "closing_2"
	CallTypeClosing3   CallType = "closing_3"
)

// AllCallTypes lists the call types in their canonical order
var AllCallTypes = []CallType{
	CallTypeDiscovery1,
	CallTypeDiscovery2,
	CallTypeDiscovery3,
	CallTypeClosing1,
	CallTypeClosing2,
	CallTypeClosing3,
}

var callTypeDisplayNames = map[CallType]string{
	CallTypeDiscovery1: "Discovery 1",
	CallTypeDiscovery2: "Discovery 2",
	CallTypeDiscovery3: "Discovery 3",
	CallTypeClosing1:   "Closing 1",
	CallTypeClosing2:   "Closing 2",
	CallTypeClosing3:   "Closing 3",
}

// IsValid checks if the call type is a known value
func (t CallType) IsValid() bool {
	_, ok := callTypeDisplayNames[t]
	return ok
}

// DisplayName returns the human-readable name of the call type
func (t CallType) DisplayName() string {
	return callTypeDisplayNames[t]
}

// Call is a scheduled discovery or closing meeting tied to one opportunity.
// Attended is tri-state: nil means the outcome is not yet known, true
// attended, false no-show.
type Call struct {
	shared.TenantAggregateRoot
	OpportunityID uuid.UUID
	Type          CallType
	Number        int
	Date          time.Time
	Duration      int
	Attended      *bool
	Link          *string
}

// NewCall schedules a new call on an opportunity. Number is assigned by
// the caller (the application layer owns the per-opportunity sequence).
func NewCall(tenantID, opportunityID uuid.UUID, callType CallType, number int, date time.Time, duration int, link *string) (*Call, error) {
	if !callType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CALL_TYPE", "Unknown call type")
	}
	if number < 1 {
		return nil, shared.NewDomainError("INVALID_CALL_NUMBER", "Call number must be at least 1")
	}
	// duration 0 means not provided; when provided it must be positive
	if duration < 0 {
		return nil, shared.NewDomainError("INVALID_CALL_DURATION", "Call duration must be positive")
	}

	call := &Call{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OpportunityID:       opportunityID,
		Type:                callType,
		Number:              number,
		Date:                date,
		Duration:            duration,
		Link:                link,
	}

	call.AddDomainEvent(NewCallScheduledEvent(call))
	return call, nil
}

// Update updates the call's schedule details
func (c *Call) Update(callType CallType, date time.Time, duration int, link *string) error {
	if !callType.IsValid() {
		return shared.NewDomainError("INVALID_CALL_TYPE", "Unknown call type")
	}
	if duration < 0 {
		return shared.NewDomainError("INVALID_CALL_DURATION", "Call duration must be positive")
	}

	c.Type = callType
	c.Date = date
	c.Duration = duration
	c.Link = link
	c.touch()
	return nil
}

// RecordAttendance records whether the prospect showed up.
// Passing nil resets the outcome to pending.
func (c *Call) RecordAttendance(attended *bool) {
	c.Attended = attended
	c.touch()
}

// IsPast reports whether the call's scheduled date has passed. Only past
// calls count toward attendance and duration statistics.
func (c *Call) IsPast(now time.Time) bool {
	return !c.Date.After(now)
}

// WasAttended reports whether the prospect attended
func (c *Call) WasAttended() bool {
	return c.Attended != nil && *c.Attended
}

func (c *Call) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

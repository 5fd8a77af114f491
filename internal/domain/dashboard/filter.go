package dashboard

import (
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
)

// FilterAll is the sentinel meaning "no restriction" for a filter field
const FilterAll = "all"

// FilterState selects which opportunities and calls feed the dashboard.
// SalespersonID and Month are strings as received from the query layer:
// SalespersonID is a UUID or "all", Month is "YYYY-MM" or "all".
type FilterState struct {
	SalespersonID string
	LeadSource    string
	Month         string
}

// DefaultFilterState returns an unrestricted filter
func DefaultFilterState() FilterState {
	return FilterState{
		SalespersonID: FilterAll,
		LeadSource:    FilterAll,
		Month:         FilterAll,
	}
}

// salespersonPredicate resolves the salesperson filter once. An
// unparseable ID matches nothing rather than falling back to "all".
type salespersonPredicate struct {
	all     bool
	invalid bool
	id      uuid.UUID
}

func newSalespersonPredicate(raw string) salespersonPredicate {
	if raw == "" || raw == FilterAll {
		return salespersonPredicate{all: true}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return salespersonPredicate{invalid: true}
	}
	return salespersonPredicate{id: id}
}

func (p salespersonPredicate) matches(salespersonID *uuid.UUID) bool {
	if p.all {
		return true
	}
	if p.invalid || salespersonID == nil {
		return false
	}
	return *salespersonID == p.id
}

// Apply filters the full opportunity and call lists down to the records
// matching the state. Calls are matched against their parent
// opportunity's salesperson and lead source but against their own date
// for the month predicate; calls whose parent is missing from the
// opportunity list are dropped. Input order is preserved.
func (f FilterState) Apply(opportunities []crm.Opportunity, calls []crm.Call) ([]crm.Opportunity, []crm.Call) {
	sp := newSalespersonPredicate(f.SalespersonID)

	matchesOpportunity := func(o *crm.Opportunity) bool {
		if !sp.matches(o.SalespersonID) {
			return false
		}
		if f.LeadSource != "" && f.LeadSource != FilterAll && o.LeadSource != f.LeadSource {
			return false
		}
		if f.Month != "" && f.Month != FilterAll && o.CreatedAt.Format("2006-01") != f.Month {
			return false
		}
		return true
	}

	byID := make(map[uuid.UUID]*crm.Opportunity, len(opportunities))
	for i := range opportunities {
		byID[opportunities[i].ID] = &opportunities[i]
	}

	filteredOpps := make([]crm.Opportunity, 0, len(opportunities))
	for i := range opportunities {
		if matchesOpportunity(&opportunities[i]) {
			filteredOpps = append(filteredOpps, opportunities[i])
		}
	}

	filteredCalls := make([]crm.Call, 0, len(calls))
	for i := range calls {
		parent, ok := byID[calls[i].OpportunityID]
		if !ok {
			continue
		}
		if !sp.matches(parent.SalespersonID) {
			continue
		}
		if f.LeadSource != "" && f.LeadSource != FilterAll && parent.LeadSource != f.LeadSource {
			continue
		}
		if f.Month != "" && f.Month != FilterAll && calls[i].Date.Format("2006-01") != f.Month {
			continue
		}
		filteredCalls = append(filteredCalls, calls[i])
	}

	return filteredOpps, filteredCalls
}

// WithMonth returns a copy of the state with the month predicate replaced
func (f FilterState) WithMonth(month string) FilterState {
	f.Month = month
	return f
}

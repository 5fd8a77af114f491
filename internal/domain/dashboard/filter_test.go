package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
)

func TestFilterState_AllMatchesEverything(t *testing.T) {
	tenantID := uuid.New()
	opps := []crm.Opportunity{
		newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive),
		newTestOpportunity(t, tenantID, 200, 0, crm.OpportunityStatusWon),
	}
	calls := []crm.Call{
		newTestCall(t, tenantID, opps[0].ID, crm.CallTypeDiscovery1, testNow, 30, nil),
	}

	fo, fc := DefaultFilterState().Apply(opps, calls)

	assert.Len(t, fo, 2)
	assert.Len(t, fc, 1)
}

func TestFilterState_SalespersonPredicate(t *testing.T) {
	tenantID := uuid.New()
	spID := uuid.New()

	mine := newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive)
	mine.SalespersonID = &spID
	unassigned := newTestOpportunity(t, tenantID, 200, 0, crm.OpportunityStatusActive)

	f := FilterState{SalespersonID: spID.String(), LeadSource: FilterAll, Month: FilterAll}
	fo, _ := f.Apply([]crm.Opportunity{mine, unassigned}, nil)

	require.Len(t, fo, 1)
	assert.Equal(t, mine.ID, fo[0].ID)
}

func TestFilterState_UnparseableSalespersonMatchesNothing(t *testing.T) {
	tenantID := uuid.New()
	spID := uuid.New()

	opp := newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive)
	opp.SalespersonID = &spID
	call := newTestCall(t, tenantID, opp.ID, crm.CallTypeDiscovery1, testNow, 30, nil)

	f := FilterState{SalespersonID: "not-a-uuid", LeadSource: FilterAll, Month: FilterAll}
	fo, fc := f.Apply([]crm.Opportunity{opp}, []crm.Call{call})

	assert.Empty(t, fo)
	assert.Empty(t, fc)
}

func TestFilterState_LeadSourceExactMatch(t *testing.T) {
	tenantID := uuid.New()
	website := newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive)
	referral := newTestOpportunity(t, tenantID, 200, 0, crm.OpportunityStatusActive)
	referral.LeadSource = "Referral"

	f := FilterState{SalespersonID: FilterAll, LeadSource: "Website", Month: FilterAll}
	fo, _ := f.Apply([]crm.Opportunity{website, referral}, nil)

	require.Len(t, fo, 1)
	assert.Equal(t, website.ID, fo[0].ID)
}

func TestFilterState_MonthPredicate(t *testing.T) {
	tenantID := uuid.New()

	june := newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive)
	june.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	may := newTestOpportunity(t, tenantID, 200, 0, crm.OpportunityStatusActive)
	may.CreatedAt = time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)

	juneCall := newTestCall(t, tenantID, may.ID, crm.CallTypeDiscovery1, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), 30, nil)
	mayCall := newTestCall(t, tenantID, june.ID, crm.CallTypeDiscovery1, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), 30, nil)

	f := FilterState{SalespersonID: FilterAll, LeadSource: FilterAll, Month: "2024-06"}
	fo, fc := f.Apply([]crm.Opportunity{june, may}, []crm.Call{juneCall, mayCall})

	require.Len(t, fo, 1)
	assert.Equal(t, june.ID, fo[0].ID)

	// calls match on their own date, not the parent's creation month
	require.Len(t, fc, 1)
	assert.Equal(t, juneCall.ID, fc[0].ID)
}

func TestFilterState_CallInheritsParentPredicates(t *testing.T) {
	tenantID := uuid.New()
	spID := uuid.New()

	mine := newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive)
	mine.SalespersonID = &spID
	other := newTestOpportunity(t, tenantID, 200, 0, crm.OpportunityStatusActive)

	myCall := newTestCall(t, tenantID, mine.ID, crm.CallTypeDiscovery1, testNow, 30, nil)
	otherCall := newTestCall(t, tenantID, other.ID, crm.CallTypeDiscovery1, testNow, 30, nil)

	f := FilterState{SalespersonID: spID.String(), LeadSource: FilterAll, Month: FilterAll}
	_, fc := f.Apply([]crm.Opportunity{mine, other}, []crm.Call{myCall, otherCall})

	require.Len(t, fc, 1)
	assert.Equal(t, myCall.ID, fc[0].ID)
}

func TestFilterState_OrphanCallsExcluded(t *testing.T) {
	tenantID := uuid.New()
	opp := newTestOpportunity(t, tenantID, 100, 0, crm.OpportunityStatusActive)
	orphan := newTestCall(t, tenantID, uuid.New(), crm.CallTypeDiscovery1, testNow, 30, nil)
	attached := newTestCall(t, tenantID, opp.ID, crm.CallTypeDiscovery1, testNow, 30, nil)

	_, fc := DefaultFilterState().Apply([]crm.Opportunity{opp}, []crm.Call{orphan, attached})

	require.Len(t, fc, 1)
	assert.Equal(t, attached.ID, fc[0].ID)
}

func TestFilterState_Idempotent(t *testing.T) {
	tenantID := uuid.New()
	spID := uuid.New()

	opps := make([]crm.Opportunity, 0, 5)
	for i := 0; i < 5; i++ {
		o := newTestOpportunity(t, tenantID, int64(100*(i+1)), 0, crm.OpportunityStatusActive)
		if i%2 == 0 {
			o.SalespersonID = &spID
		}
		opps = append(opps, o)
	}
	calls := []crm.Call{
		newTestCall(t, tenantID, opps[0].ID, crm.CallTypeDiscovery1, testNow, 30, nil),
		newTestCall(t, tenantID, opps[1].ID, crm.CallTypeClosing1, testNow, 30, nil),
	}

	f := FilterState{SalespersonID: spID.String(), LeadSource: FilterAll, Month: FilterAll}
	fo1, fc1 := f.Apply(opps, calls)
	fo2, fc2 := f.Apply(opps, calls)

	assert.Equal(t, fo1, fo2)
	assert.Equal(t, fc1, fc2)
}

func TestFilterState_PreservesInputOrder(t *testing.T) {
	tenantID := uuid.New()
	opps := make([]crm.Opportunity, 0, 10)
	for i := 0; i < 10; i++ {
		opps = append(opps, newTestOpportunity(t, tenantID, int64(i+1), 0, crm.OpportunityStatusActive))
	}

	fo, _ := DefaultFilterState().Apply(opps, nil)

	require.Len(t, fo, 10)
	for i := range fo {
		assert.Equal(t, opps[i].ID, fo[i].ID)
	}
}

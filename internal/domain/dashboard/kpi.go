package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crm/backend/internal/domain/crm"
)

// KPIs are the headline dashboard metrics derived from a filtered set of
// opportunities and calls. Pure function of its inputs.
type KPIs struct {
	TotalRevenue             decimal.Decimal `json:"total_revenue"`
	PotentialRevenue         decimal.Decimal `json:"potential_revenue"`
	TotalCash                decimal.Decimal `json:"total_cash"`
	TotalCalls               int             `json:"total_calls"`
	ActiveOpportunities      int             `json:"active_opportunities"`
	AverageDealSize          decimal.Decimal `json:"average_deal_size"`
	ClosingRate              float64         `json:"closing_rate"`
	ProposalsPitched         int             `json:"proposals_pitched"`
	OverallShowUpRate        float64         `json:"overall_show_up_rate"`
	FirstDiscoveryShowUpRate float64         `json:"first_discovery_show_up_rate"`
}

// ComputeKPIs reduces the filtered records into headline metrics.
// TotalRevenue counts won deals only; PotentialRevenue counts every
// opportunity regardless of status. Show-up rates consider past calls
// only (date <= now).
func ComputeKPIs(opportunities []crm.Opportunity, calls []crm.Call, now time.Time) KPIs {
	k := KPIs{
		TotalRevenue:     decimal.Zero,
		PotentialRevenue: decimal.Zero,
		TotalCash:        decimal.Zero,
		AverageDealSize:  decimal.Zero,
		TotalCalls:       len(calls),
	}

	won := 0
	lost := 0
	for i := range opportunities {
		o := &opportunities[i]
		k.PotentialRevenue = k.PotentialRevenue.Add(o.Revenue)
		k.TotalCash = k.TotalCash.Add(o.CashCollected)
		switch o.Status {
		case crm.OpportunityStatusWon:
			won++
			k.TotalRevenue = k.TotalRevenue.Add(o.Revenue)
		case crm.OpportunityStatusLost:
			lost++
		case crm.OpportunityStatusActive:
			k.ActiveOpportunities++
		}
		if o.ProposalStatus == crm.ProposalStatusPitched {
			k.ProposalsPitched++
		}
	}

	if won > 0 {
		k.AverageDealSize = k.TotalRevenue.Div(decimal.NewFromInt(int64(won)))
	}
	if won+lost > 0 {
		k.ClosingRate = float64(won) / float64(won+lost) * 100
	}

	pastTotal, pastAttended := 0, 0
	firstDiscTotal, firstDiscAttended := 0, 0
	for i := range calls {
		c := &calls[i]
		if !c.IsPast(now) {
			continue
		}
		pastTotal++
		attended := c.WasAttended()
		if attended {
			pastAttended++
		}
		if c.Type == crm.CallTypeDiscovery1 {
			firstDiscTotal++
			if attended {
				firstDiscAttended++
			}
		}
	}
	k.OverallShowUpRate = ratio(pastAttended, pastTotal)
	k.FirstDiscoveryShowUpRate = ratio(firstDiscAttended, firstDiscTotal)

	return k
}

// KPIChanges holds period-over-period deltas in percent. A nil pointer
// means there is no basis for comparison, which is different from a 0%
// change.
type KPIChanges struct {
	RevenueChange          *float64 `json:"revenue_change"`
	PotentialRevenueChange *float64 `json:"potential_revenue_change"`
	CashChange             *float64 `json:"cash_change"`
	CallsChange            *float64 `json:"calls_change"`
	ClosingRateChange      *float64 `json:"closing_rate_change"`
	ShowUpRateChange       *float64 `json:"show_up_rate_change"`
}

// ComputeKPIChanges compares the selected month against the previous
// calendar month. Both periods are re-derived from the FULL unfiltered
// lists with only the month predicate swapped, keeping the salesperson
// and lead-source predicates of the current filter. Returns nil when no
// specific month is selected.
func ComputeKPIChanges(allOpportunities []crm.Opportunity, allCalls []crm.Call, filter FilterState, now time.Time) *KPIChanges {
	if filter.Month == "" || filter.Month == FilterAll {
		return nil
	}
	prevMonth, ok := previousMonth(filter.Month)
	if !ok {
		return nil
	}

	curOpps, curCalls := filter.Apply(allOpportunities, allCalls)
	prevOpps, prevCalls := filter.WithMonth(prevMonth).Apply(allOpportunities, allCalls)

	cur := ComputeKPIs(curOpps, curCalls, now)
	prev := ComputeKPIs(prevOpps, prevCalls, now)

	return &KPIChanges{
		RevenueChange:          changePtr(cur.TotalRevenue.InexactFloat64(), prev.TotalRevenue.InexactFloat64()),
		PotentialRevenueChange: changePtr(cur.PotentialRevenue.InexactFloat64(), prev.PotentialRevenue.InexactFloat64()),
		CashChange:             changePtr(cur.TotalCash.InexactFloat64(), prev.TotalCash.InexactFloat64()),
		CallsChange:            changePtr(float64(cur.TotalCalls), float64(prev.TotalCalls)),
		ClosingRateChange:      changePtr(cur.ClosingRate, prev.ClosingRate),
		ShowUpRateChange:       changePtr(cur.OverallShowUpRate, prev.OverallShowUpRate),
	}
}

// Change computes a period-over-period delta in percent. A zero previous
// value yields 100 when the current value is positive, otherwise 0, so
// growth from nothing is signaled without dividing by zero.
func Change(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

func changePtr(current, previous float64) *float64 {
	v := Change(current, previous)
	return &v
}

// previousMonth returns the "YYYY-MM" month preceding the given one
func previousMonth(month string) (string, bool) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, -1, 0).Format("2006-01"), true
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

package dashboard

import (
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/dashboard"
)

// MetricsQuery selects the dashboard's filter state. Empty values mean
// "all".
type MetricsQuery struct {
	SalespersonID string `form:"salesperson_id"`
	LeadSource    string `form:"lead_source"`
	Month         string `form:"month" binding:"omitempty,datetime=2006-01|eq=all"`
}

// FilterEcho reports the filter state the metrics were computed under
type FilterEcho struct {
	SalespersonID string `json:"salesperson_id"`
	LeadSource    string `json:"lead_source"`
	Month         string `json:"month"`
}

// MetricsResponse is the full dashboard payload
type MetricsResponse struct {
	KPIs        dashboard.KPIs                       `json:"kpis"`
	Changes     *dashboard.KPIChanges                `json:"changes"`
	CallMetrics map[string]dashboard.CallTypeMetrics `json:"call_metrics"`
	Filter      FilterEcho                           `json:"filter"`
}

// ToFilterState converts the query into the domain filter state
func (q MetricsQuery) ToFilterState() dashboard.FilterState {
	state := dashboard.DefaultFilterState()
	if q.SalespersonID != "" {
		state.SalespersonID = q.SalespersonID
	}
	if q.LeadSource != "" {
		state.LeadSource = q.LeadSource
	}
	if q.Month != "" {
		state.Month = q.Month
	}
	return state
}

func toCallMetricsResponse(metrics dashboard.CallMetrics) map[string]dashboard.CallTypeMetrics {
	out := make(map[string]dashboard.CallTypeMetrics, len(metrics))
	for _, ct := range crm.AllCallTypes {
		out[string(ct)] = metrics[ct]
	}
	return out
}

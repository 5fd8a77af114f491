package dashboard

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
)

// CallTypeMetrics are the per-call-type statistics over past calls
type CallTypeMetrics struct {
	Count           int     `json:"count"`
	AverageDuration float64 `json:"average_duration"`
	ShowUpRate      float64 `json:"show_up_rate"`
}

// CallMetrics maps every call type to its metrics. Every type is always
// present, with zero values when it has no past calls.
type CallMetrics map[crm.CallType]CallTypeMetrics

// ComputeCallMetrics aggregates counts, average durations and show-up
// rates per call type. Uses the same past-call predicate (date <= now)
// as the KPI show-up rates so the two views agree.
func ComputeCallMetrics(calls []crm.Call, now time.Time) CallMetrics {
	type bucket struct {
		count    int
		attended int
		duration int
	}
	buckets := make(map[crm.CallType]*bucket, len(crm.AllCallTypes))
	for _, t := range crm.AllCallTypes {
		buckets[t] = &bucket{}
	}

	for i := range calls {
		c := &calls[i]
		if !c.IsPast(now) {
			continue
		}
		b, ok := buckets[c.Type]
		if !ok {
			continue
		}
		b.count++
		b.duration += c.Duration
		if c.WasAttended() {
			b.attended++
		}
	}

	metrics := make(CallMetrics, len(buckets))
	for t, b := range buckets {
		m := CallTypeMetrics{Count: b.count}
		if b.count > 0 {
			m.AverageDuration = float64(b.duration) / float64(b.count)
			m.ShowUpRate = float64(b.attended) / float64(b.count) * 100
		}
		metrics[t] = m
	}
	return metrics
}

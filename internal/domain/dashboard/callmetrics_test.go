package dashboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
)

func TestComputeCallMetrics_EveryTypeAlwaysPresent(t *testing.T) {
	metrics := ComputeCallMetrics(nil, testNow)

	require.Len(t, metrics, len(crm.AllCallTypes))
	for _, ct := range crm.AllCallTypes {
		m, ok := metrics[ct]
		require.True(t, ok)
		assert.Equal(t, 0, m.Count)
		assert.Equal(t, 0.0, m.AverageDuration, "zero, not NaN")
		assert.Equal(t, 0.0, m.ShowUpRate)
	}
}

func TestComputeCallMetrics_ShowUpRateScenario(t *testing.T) {
	tenantID := uuid.New()
	oppID := uuid.New()

	calls := []crm.Call{
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery1, testNow.AddDate(0, 0, -4), 30, boolPtr(true)),
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery1, testNow.AddDate(0, 0, -3), 30, boolPtr(true)),
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery1, testNow.AddDate(0, 0, -2), 30, boolPtr(true)),
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery1, testNow.AddDate(0, 0, -1), 30, boolPtr(false)),
		// tomorrow: excluded from count and rate
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery1, testNow.AddDate(0, 0, 1), 30, nil),
	}

	metrics := ComputeCallMetrics(calls, testNow)

	d1 := metrics[crm.CallTypeDiscovery1]
	assert.Equal(t, 4, d1.Count)
	assert.Equal(t, 75.0, d1.ShowUpRate)
}

func TestComputeCallMetrics_AverageDuration(t *testing.T) {
	tenantID := uuid.New()
	oppID := uuid.New()

	calls := []crm.Call{
		newTestCall(t, tenantID, oppID, crm.CallTypeClosing2, testNow.AddDate(0, 0, -2), 30, boolPtr(true)),
		newTestCall(t, tenantID, oppID, crm.CallTypeClosing2, testNow.AddDate(0, 0, -1), 45, boolPtr(true)),
	}

	metrics := ComputeCallMetrics(calls, testNow)

	assert.Equal(t, 37.5, metrics[crm.CallTypeClosing2].AverageDuration)
	assert.Equal(t, 0, metrics[crm.CallTypeClosing1].Count)
}

func TestComputeCallMetrics_BucketsAreIndependent(t *testing.T) {
	tenantID := uuid.New()
	oppID := uuid.New()

	calls := []crm.Call{
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery1, testNow.AddDate(0, 0, -1), 30, boolPtr(true)),
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery2, testNow.AddDate(0, 0, -1), 60, boolPtr(false)),
	}

	metrics := ComputeCallMetrics(calls, testNow)

	assert.Equal(t, 100.0, metrics[crm.CallTypeDiscovery1].ShowUpRate)
	assert.Equal(t, 0.0, metrics[crm.CallTypeDiscovery2].ShowUpRate)

	for _, ct := range crm.AllCallTypes {
		rate := metrics[ct].ShowUpRate
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}

func TestComputeCallMetrics_CallOnExactNowIsPast(t *testing.T) {
	tenantID := uuid.New()
	oppID := uuid.New()

	calls := []crm.Call{
		newTestCall(t, tenantID, oppID, crm.CallTypeDiscovery3, testNow, 30, boolPtr(true)),
	}

	metrics := ComputeCallMetrics(calls, testNow)

	assert.Equal(t, 1, metrics[crm.CallTypeDiscovery3].Count)
}

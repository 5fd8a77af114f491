package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCall(t *testing.T) {
	tenantID := uuid.New()
	oppID := uuid.New()
	date := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	link := "https://meet.example.com/abc"

	call, err := NewCall(tenantID, oppID, CallTypeDiscovery1, 1, date, 30, &link)
	require.NoError(t, err)

	assert.Equal(t, oppID, call.OpportunityID)
	assert.Equal(t, CallTypeDiscovery1, call.Type)
	assert.Equal(t, 1, call.Number)
	assert.Nil(t, call.Attended, "outcome starts pending")
	assert.Len(t, call.GetDomainEvents(), 1)
}

func TestNewCall_Validation(t *testing.T) {
	tenantID := uuid.New()
	oppID := uuid.New()
	date := time.Now()

	_, err := NewCall(tenantID, oppID, CallType("coffee_chat"), 1, date, 30, nil)
	assert.Error(t, err, "call types are a closed set")

	_, err = NewCall(tenantID, oppID, CallTypeClosing1, 0, date, 30, nil)
	assert.Error(t, err, "numbering is 1-based")

	_, err = NewCall(tenantID, oppID, CallTypeClosing1, 1, date, -10, nil)
	assert.Error(t, err)

	_, err = NewCall(tenantID, oppID, CallTypeClosing1, 1, date, 0, nil)
	assert.NoError(t, err, "duration is optional")
}

func TestCall_IsPast(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tenantID := uuid.New()
	oppID := uuid.New()

	past, err := NewCall(tenantID, oppID, CallTypeDiscovery1, 1, now.Add(-time.Hour), 30, nil)
	require.NoError(t, err)
	exact, err := NewCall(tenantID, oppID, CallTypeDiscovery1, 2, now, 30, nil)
	require.NoError(t, err)
	future, err := NewCall(tenantID, oppID, CallTypeDiscovery1, 3, now.Add(time.Hour), 30, nil)
	require.NoError(t, err)

	assert.True(t, past.IsPast(now))
	assert.True(t, exact.IsPast(now), "date == now counts as past")
	assert.False(t, future.IsPast(now))
}

func TestCall_RecordAttendance(t *testing.T) {
	call, err := NewCall(uuid.New(), uuid.New(), CallTypeClosing2, 1, time.Now(), 45, nil)
	require.NoError(t, err)

	attended := true
	call.RecordAttendance(&attended)
	assert.True(t, call.WasAttended())

	noShow := false
	call.RecordAttendance(&noShow)
	assert.False(t, call.WasAttended())
	assert.NotNil(t, call.Attended)

	call.RecordAttendance(nil)
	assert.Nil(t, call.Attended, "outcome can be reset to pending")
	assert.False(t, call.WasAttended())
}

func TestCallType_DisplayNames(t *testing.T) {
	expected := map[CallType]string{
		CallTypeDiscovery1: "Discovery 1",
		CallTypeDiscovery2: "Discovery 2",
		CallTypeDiscovery3: "Discovery 3",
		CallTypeClosing1:   "Closing 1",
		CallTypeClosing2:   "Closing 2",
		CallTypeClosing3:   "Closing 3",
	}
	require.Len(t, AllCallTypes, 6)
	for _, ct := range AllCallTypes {
		assert.True(t, ct.IsValid())
		assert.Equal(t, expected[ct], ct.DisplayName())
	}
}

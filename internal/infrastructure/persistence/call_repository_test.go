package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
)

func TestGormCallRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	oppRepo := NewGormOpportunityRepository(db)
	repo := NewGormCallRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, oppRepo, tenantID, "Acme Corp", "Website", 50000)

	call, err := crm.NewCall(tenantID, opp.ID, crm.CallTypeDiscovery1, 1, time.Now(), 30, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, call))

	found, err := repo.FindByID(ctx, tenantID, call.ID)
	require.NoError(t, err)
	assert.Equal(t, crm.CallTypeDiscovery1, found.Type)
	assert.Equal(t, 1, found.Number)
	assert.Nil(t, found.Attended)
}

func TestGormCallRepository_MaxNumber(t *testing.T) {
	db := setupTestDB(t)
	oppRepo := NewGormOpportunityRepository(db)
	repo := NewGormCallRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, oppRepo, tenantID, "Acme Corp", "Website", 50000)

	max, err := repo.MaxNumber(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	for i := 1; i <= 3; i++ {
		call, err := crm.NewCall(tenantID, opp.ID, crm.CallTypeDiscovery1, i, time.Now(), 30, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, call))
	}

	max, err = repo.MaxNumber(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, max)
}

func TestGormCallRepository_CreateWithNextNumber(t *testing.T) {
	db := setupTestDB(t)
	oppRepo := NewGormOpportunityRepository(db)
	repo := NewGormCallRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, oppRepo, tenantID, "Acme Corp", "Website", 50000)

	first, err := crm.NewCall(tenantID, opp.ID, crm.CallTypeDiscovery1, 1, time.Now(), 30, nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithNextNumber(ctx, first))
	assert.Equal(t, 1, first.Number)

	second, err := crm.NewCall(tenantID, opp.ID, crm.CallTypeDiscovery2, 1, time.Now(), 45, nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithNextNumber(ctx, second))
	assert.Equal(t, 2, second.Number)
}

func TestGormCallRepository_CreateWithNextNumber_UnknownOpportunity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCallRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	call, err := crm.NewCall(tenantID, uuid.New(), crm.CallTypeDiscovery1, 1, time.Now(), 30, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.CreateWithNextNumber(ctx, call), shared.ErrNotFound)
}

func TestGormCallRepository_FindByOpportunity_OrderedByNumber(t *testing.T) {
	db := setupTestDB(t)
	oppRepo := NewGormOpportunityRepository(db)
	repo := NewGormCallRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, oppRepo, tenantID, "Acme Corp", "Website", 50000)

	for _, n := range []int{3, 1, 2} {
		call, err := crm.NewCall(tenantID, opp.ID, crm.CallTypeDiscovery1, n, time.Now(), 30, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, call))
	}

	calls, err := repo.FindByOpportunity(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	require.Len(t, calls, 3)
	for i, c := range calls {
		assert.Equal(t, i+1, c.Number)
	}
}

func TestGormCallRepository_RecordAttendanceRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	oppRepo := NewGormOpportunityRepository(db)
	repo := NewGormCallRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, oppRepo, tenantID, "Acme Corp", "Website", 50000)

	call, err := crm.NewCall(tenantID, opp.ID, crm.CallTypeClosing1, 1, time.Now(), 60, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, call))

	attended := false
	call.RecordAttendance(&attended)
	require.NoError(t, repo.Save(ctx, call))

	found, err := repo.FindByID(ctx, tenantID, call.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Attended)
	assert.False(t, *found.Attended)
}

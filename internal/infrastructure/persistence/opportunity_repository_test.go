package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
)

func mustCreateOpportunity(t *testing.T, repo *GormOpportunityRepository, tenantID uuid.UUID, name, leadSource string, revenue int64) *crm.Opportunity {
	t.Helper()
	opp, err := crm.NewOpportunity(tenantID, name, leadSource, decimal.NewFromInt(revenue), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), opp))
	return opp
}

func TestGormOpportunityRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, repo, tenantID, "Acme Corp", "Website", 50000)

	found, err := repo.FindByID(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", found.Name)
	assert.Equal(t, crm.OpportunityStatusActive, found.Status)
	assert.True(t, found.Revenue.Equal(decimal.NewFromInt(50000)))
}

func TestGormOpportunityRepository_FindByID_TenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, repo, tenantID, "Acme Corp", "Website", 50000)

	_, err := repo.FindByID(ctx, uuid.New(), opp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOpportunityRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	opp := mustCreateOpportunity(t, repo, tenantID, "Acme Corp", "Website", 50000)

	require.NoError(t, repo.Delete(ctx, tenantID, opp.ID))

	_, err := repo.FindByID(ctx, tenantID, opp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, tenantID, opp.ID), shared.ErrNotFound)
}

func TestGormOpportunityRepository_ClearSalesperson(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	salespersonID := uuid.New()

	owned := mustCreateOpportunity(t, repo, tenantID, "Owned", "Website", 1000)
	owned.AssignSalesperson(&salespersonID)
	require.NoError(t, repo.Save(ctx, owned))

	other := mustCreateOpportunity(t, repo, tenantID, "Other", "Website", 2000)
	otherOwner := uuid.New()
	other.AssignSalesperson(&otherOwner)
	require.NoError(t, repo.Save(ctx, other))

	affected, err := repo.ClearSalesperson(ctx, tenantID, salespersonID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, err := repo.FindByID(ctx, tenantID, owned.ID)
	require.NoError(t, err)
	assert.Nil(t, found.SalespersonID)

	untouched, err := repo.FindByID(ctx, tenantID, other.ID)
	require.NoError(t, err)
	require.NotNil(t, untouched.SalespersonID)
	assert.Equal(t, otherOwner, *untouched.SalespersonID)
}

func TestGormOpportunityRepository_ReassignLeadSource(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first := mustCreateOpportunity(t, repo, tenantID, "First", "Referral", 1000)
	second := mustCreateOpportunity(t, repo, tenantID, "Second", "Referral", 2000)
	third := mustCreateOpportunity(t, repo, tenantID, "Third", "Website", 3000)

	affected, err := repo.ReassignLeadSource(ctx, tenantID, "Referral", "Unknown")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		found, err := repo.FindByID(ctx, tenantID, id)
		require.NoError(t, err)
		assert.Equal(t, "Unknown", found.LeadSource)
	}

	untouched, err := repo.FindByID(ctx, tenantID, third.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", untouched.LeadSource)
}

func TestGormOpportunityRepository_MoveToStage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	stageID := uuid.New()

	opp := mustCreateOpportunity(t, repo, tenantID, "Acme Corp", "Website", 50000)
	require.Nil(t, opp.LastInteractionAt)

	require.NoError(t, repo.MoveToStage(ctx, tenantID, opp.ID, stageID))

	found, err := repo.FindByID(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	require.NotNil(t, found.StageID)
	assert.Equal(t, stageID, *found.StageID)
	assert.NotNil(t, found.LastInteractionAt)

	assert.ErrorIs(t, repo.MoveToStage(ctx, tenantID, uuid.New(), stageID), shared.ErrNotFound)
}

func TestGormOpportunityRepository_FindByStage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	stageID := uuid.New()

	staged := mustCreateOpportunity(t, repo, tenantID, "Staged", "Website", 1000)
	require.NoError(t, repo.MoveToStage(ctx, tenantID, staged.ID, stageID))
	mustCreateOpportunity(t, repo, tenantID, "Unstaged", "Website", 2000)

	inStage, err := repo.FindByStage(ctx, tenantID, stageID)
	require.NoError(t, err)
	require.Len(t, inStage, 1)
	assert.Equal(t, "Staged", inStage[0].Name)
}

func TestGormOpportunityRepository_FindAll_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	won := mustCreateOpportunity(t, repo, tenantID, "Won", "Website", 1000)
	require.NoError(t, won.Win())
	require.NoError(t, repo.Save(ctx, won))
	mustCreateOpportunity(t, repo, tenantID, "Active", "Website", 2000)

	filter := shared.Filter{Filters: map[string]interface{}{"status": "won"}}
	results, err := repo.FindAll(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Won", results[0].Name)

	count, err := repo.Count(ctx, tenantID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormTransactionManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	txManager := NewGormTransactionManager(db)
	ctx := context.Background()
	tenantID := uuid.New()
	salespersonID := uuid.New()

	opp := mustCreateOpportunity(t, repo, tenantID, "Owned", "Website", 1000)
	opp.AssignSalesperson(&salespersonID)
	require.NoError(t, repo.Save(ctx, opp))

	err := txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := repo.ClearSalesperson(txCtx, tenantID, salespersonID); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	// the clear was rolled back with the failed transaction
	found, err := repo.FindByID(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	require.NotNil(t, found.SalespersonID)
	assert.Equal(t, salespersonID, *found.SalespersonID)
}

func TestGormTransactionManager_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpportunityRepository(db)
	txManager := NewGormTransactionManager(db)
	ctx := context.Background()
	tenantID := uuid.New()
	salespersonID := uuid.New()

	opp := mustCreateOpportunity(t, repo, tenantID, "Owned", "Website", 1000)
	opp.AssignSalesperson(&salespersonID)
	require.NoError(t, repo.Save(ctx, opp))

	err := txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := repo.ClearSalesperson(txCtx, tenantID, salespersonID)
		return err
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, tenantID, opp.ID)
	require.NoError(t, err)
	assert.Nil(t, found.SalespersonID)
}

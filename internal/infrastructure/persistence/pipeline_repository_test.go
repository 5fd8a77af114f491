package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/pipeline"
	"github.com/crm/backend/internal/domain/shared"
)

func mustCreatePipeline(t *testing.T, repo *GormPipelineRepository, tenantID uuid.UUID, name string, isDefault bool) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.NewPipeline(tenantID, name, isDefault)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestGormPipelineRepository_SaveWithStages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPipelineRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	p, err := pipeline.NewPipeline(tenantID, "Sales", true)
	require.NoError(t, err)
	_, err = p.AddStage("New", "#3b82f6", false)
	require.NoError(t, err)
	_, err = p.AddStage("Closed", "#22c55e", true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, tenantID, p.ID)
	require.NoError(t, err)
	require.Len(t, found.Stages, 2)
	assert.Equal(t, "New", found.Stages[0].Name)
	assert.Equal(t, "Closed", found.Stages[1].Name)
	assert.True(t, found.Stages[1].IsFinal)
}

func TestGormPipelineRepository_SaveRemovesDroppedStages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPipelineRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	p, err := pipeline.NewPipeline(tenantID, "Sales", false)
	require.NoError(t, err)
	first, err := p.AddStage("New", "", false)
	require.NoError(t, err)
	_, err = p.AddStage("Won", "", true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, p.RemoveStage(first.ID))
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, tenantID, p.ID)
	require.NoError(t, err)
	require.Len(t, found.Stages, 1)
	assert.Equal(t, "Won", found.Stages[0].Name)
}

func TestGormPipelineRepository_SetDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPipelineRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first := mustCreatePipeline(t, repo, tenantID, "First", true)
	second := mustCreatePipeline(t, repo, tenantID, "Second", false)

	require.NoError(t, repo.SetDefault(ctx, tenantID, second.ID))

	foundFirst, err := repo.FindByID(ctx, tenantID, first.ID)
	require.NoError(t, err)
	assert.False(t, foundFirst.IsDefault)

	foundSecond, err := repo.FindByID(ctx, tenantID, second.ID)
	require.NoError(t, err)
	assert.True(t, foundSecond.IsDefault)

	def, err := repo.FindDefault(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	assert.ErrorIs(t, repo.SetDefault(ctx, tenantID, uuid.New()), shared.ErrNotFound)
}

func TestGormPipelineRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPipelineRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	p := mustCreatePipeline(t, repo, tenantID, "Sales", false)

	require.NoError(t, repo.Delete(ctx, tenantID, p.ID))
	_, err := repo.FindByID(ctx, tenantID, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

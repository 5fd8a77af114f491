package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.SalespersonModel{},
		&models.LeadSourceModel{},
		&models.PipelineModel{},
		&models.StageModel{},
		&models.OpportunityModel{},
		&models.CallModel{},
		&models.NoteModel{},
		&models.ContactModel{},
		&models.AttachmentModel{},
	)
	require.NoError(t, err)

	return db
}

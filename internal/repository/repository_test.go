package repository

import (
	"testing"

	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.UserRole{},
		&models.Task{},
		&models.Organisation{},
		&models.OrganisationManager{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id int64, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:         id,
		Username:   username,
		Role:       models.RoleMapper,
		APIKeyHash: "test-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:     name,
		Status:   "active",
		OwnerID:  1,
		IsActive: true,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

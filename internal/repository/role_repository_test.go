package repository

import (
	"testing"

	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_Upsert_HigherRankWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoleRepository(db)

	user := createTestUser(t, db, 1, "user1")
	project := createTestProject(t, db, "Test Project")

	// First write stores VALIDATOR
	stored, err := repo.Upsert(user.ID, project.ID, models.ProjectRoleValidator)
	require.NoError(t, err)
	require.Equal(t, models.ProjectRoleValidator, stored.Role)

	// A lower-ranked role must not replace it, but the stored row is
	// still returned
	stored, err = repo.Upsert(user.ID, project.ID, models.ProjectRoleMapper)
	require.NoError(t, err)
	require.Equal(t, models.ProjectRoleValidator, stored.Role)

	// A higher-ranked role replaces it
	stored, err = repo.Upsert(user.ID, project.ID, models.ProjectRoleProjectManager)
	require.NoError(t, err)
	require.Equal(t, models.ProjectRoleProjectManager, stored.Role)

	// Still exactly one row for the pair
	var count int64
	require.NoError(t, db.Model(&models.UserRole{}).
		Where("user_id = ? AND project_id = ?", user.ID, project.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRoleRepository_Upsert_SeparatePairs(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoleRepository(db)

	alice := createTestUser(t, db, 1, "alice")
	bob := createTestUser(t, db, 2, "bob")
	project := createTestProject(t, db, "Test Project")

	_, err := repo.Upsert(alice.ID, project.ID, models.ProjectRoleProjectManager)
	require.NoError(t, err)
	_, err = repo.Upsert(bob.ID, project.ID, models.ProjectRoleMapper)
	require.NoError(t, err)

	roles, err := repo.ListByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, models.ProjectRoleProjectManager, roles[0].Role)
	require.Equal(t, models.ProjectRoleMapper, roles[1].Role)
}

func TestRoleRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoleRepository(db)

	user := createTestUser(t, db, 1, "user1")
	projectA := createTestProject(t, db, "Project A")
	projectB := createTestProject(t, db, "Project B")

	_, err := repo.Upsert(user.ID, projectA.ID, models.ProjectRoleValidator)
	require.NoError(t, err)
	_, err = repo.Upsert(user.ID, projectB.ID, models.ProjectRoleFieldManager)
	require.NoError(t, err)

	roles, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 2)
}

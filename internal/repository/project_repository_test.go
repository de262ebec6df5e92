package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProjectRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	project := createTestProject(t, db, "Flood Mapping")

	affected, err := repo.SoftDelete(project.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// Excluded from reads
	_, err = repo.FindByID(project.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	projects, total, err := repo.List(ListFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, projects)

	// The row itself survives, stamped and deactivated
	var stored models.Project
	require.NoError(t, db.Unscoped().Where("id = ?", project.ID).First(&stored).Error)
	require.True(t, stored.DeletedAt.Valid)
	require.False(t, stored.IsActive)
}

func TestProjectRepository_SoftDelete_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	affected, err := repo.SoftDelete(uuid.New())
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

func TestProjectRepository_SoftDelete_Twice(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	project := createTestProject(t, db, "Flood Mapping")

	_, err := repo.SoftDelete(project.ID)
	require.NoError(t, err)

	affected, err := repo.SoftDelete(project.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

func TestProjectRepository_List_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	createTestProject(t, db, "Flood Mapping Kenya")
	createTestProject(t, db, "Road Survey")

	surveyed := &models.Project{
		Name:        "Building Survey",
		OwnerID:     1,
		Description: "post-flood assessment",
	}
	require.NoError(t, repo.Create(surveyed))

	projects, total, err := repo.List(ListFilter{Search: "flood"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	require.ElementsMatch(t, []string{"Flood Mapping Kenya", "Building Survey"}, names)
}

func TestProjectRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)

	project := createTestProject(t, db, "Flood Mapping")

	affected, err := repo.Update(project.ID, map[string]any{"status": "archived"})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	stored, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.Equal(t, "archived", stored.Status)
	require.Equal(t, "Flood Mapping", stored.Name)

	affected, err = repo.Update(uuid.New(), map[string]any{"status": "archived"})
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

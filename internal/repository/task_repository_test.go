package repository

import (
	"testing"

	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestTask(t *testing.T, repo TaskRepository, title string) *models.Task {
	t.Helper()
	task := &models.Task{Title: title}
	require.NoError(t, repo.Create(task))
	return task
}

func TestTaskRepository_List_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)

	createTestTask(t, repo, "Trace buildings")
	createTestTask(t, repo, "Validate roads")

	desc := "building drone imagery pipeline"
	withDesc := &models.Task{Title: "Imagery setup", Description: &desc}
	require.NoError(t, repo.Create(withDesc))

	// Matches title or description, case-insensitively
	tasks, total, err := repo.List(ListFilter{Search: "BUILDING"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	require.ElementsMatch(t, []string{"Trace buildings", "Imagery setup"}, titles)
}

func TestTaskRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)

	task := createTestTask(t, repo, "Trace buildings")

	affected, err := repo.Update(task.ID, map[string]any{"is_completed": true})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	stored, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	require.True(t, stored.IsCompleted)
	require.Equal(t, "Trace buildings", stored.Title)

	affected, err = repo.Update(9999, map[string]any{"is_completed": true})
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)

	task := createTestTask(t, repo, "Trace buildings")

	affected, err := repo.Delete(task.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// Gone for good, not soft-deleted
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Task{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	_, err = repo.FindByID(task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	affected, err = repo.Delete(task.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

package repository

import (
	"github.com/openmapcollab/mapping-api/internal/database"
	"github.com/openmapcollab/mapping-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id int64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter ListFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PerPage)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies the given columns to a task
func (r *GormTaskRepository) Update(id int64, columns map[string]any) (int64, error) {
	res := r.db.Model(&models.Task{}).Where("id = ?", id).Updates(columns)
	return res.RowsAffected, res.Error
}

// Delete hard-deletes a task, reporting whether a row was removed
func (r *GormTaskRepository) Delete(id int64) (int64, error) {
	res := r.db.Delete(&models.Task{}, id)
	return res.RowsAffected, res.Error
}

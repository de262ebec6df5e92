package repository

import (
	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/database"
	"github.com/openmapcollab/mapping-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository.
// The soft-delete filter comes from gorm.DeletedAt on the model, so every
// read in this file automatically excludes deleted rows.
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(filter ListFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{})
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
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
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update applies the given columns to a project
func (r *GormProjectRepository) Update(id uuid.UUID, columns map[string]any) (int64, error) {
	res := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(columns)
	return res.RowsAffected, res.Error
}

// SoftDelete stamps the deletion timestamp and clears the active flag.
// The row is kept; reads exclude it from then on.
func (r *GormProjectRepository) SoftDelete(id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", id).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}

		affected = res.RowsAffected
		if affected == 0 {
			// Missing or already deleted
			return nil
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
	return affected, err
}

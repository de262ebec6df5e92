package repository

import (
	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// Upsert stores a role for a (user, project) pair. The conflict clause
// replaces the stored role only when the incoming rank is higher, so the
// read-modify-write stays atomic inside the storage engine. The stored
// row is re-read and returned whether or not it changed.
func (r *GormRoleRepository) Upsert(userID int64, projectID uuid.UUID, role models.ProjectRole) (*models.UserRole, error) {
	row := models.UserRole{
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
		RoleRank:  role.Rank(),
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "role_rank"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "user_roles.role_rank < excluded.role_rank"},
			}},
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	var stored models.UserRole
	if err := r.db.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&stored).Error; err != nil {
		return nil, err
	}

	return &stored, nil
}

// ListByProject lists all role rows for one project
func (r *GormRoleRepository) ListByProject(projectID uuid.UUID) ([]models.UserRole, error) {
	var roles []models.UserRole
	if err := r.db.
		Where("project_id = ?", projectID).
		Order("user_id").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// ListByUser lists all role rows for one user
func (r *GormRoleRepository) ListByUser(userID int64) ([]models.UserRole, error) {
	var roles []models.UserRole
	if err := r.db.
		Where("user_id = ?", userID).
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

package repository

import (
	"github.com/openmapcollab/mapping-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganisationRepository is a GORM implementation of OrganisationRepository
type GormOrganisationRepository struct {
	db *gorm.DB
}

// NewOrganisationRepository creates a new OrganisationRepository
func NewOrganisationRepository(db *gorm.DB) OrganisationRepository {
	return &GormOrganisationRepository{db: db}
}

// ListManagedIDs returns the IDs of organisations managed by a user
func (r *GormOrganisationRepository) ListManagedIDs(userID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.Model(&models.OrganisationManager{}).
		Where("user_id = ?", userID).
		Order("organisation_id").
		Pluck("organisation_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

package repository

import (
	"time"

	"github.com/openmapcollab/mapping-api/internal/database"
	"github.com/openmapcollab/mapping-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user, failing on a duplicate username
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Upsert inserts a user, refreshing the mutable registration fields when
// the username is already taken
func (r *GormUserRepository) Upsert(user *models.User) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "name", "api_key_hash"}),
		}).
		Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by exact username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernamePrefix finds a user by case-insensitive username prefix
func (r *GormUserRepository) FindByUsernamePrefix(prefix string) (*models.User, error) {
	var user models.User
	if err := r.db.
		Where("LOWER(username) LIKE LOWER(?)", prefix+"%").
		Order("id").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with filtering and pagination
func (r *GormUserRepository) List(filter ListFilter) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})
	if filter.Search != "" {
		query = query.Where("LOWER(username) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("registered_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PerPage)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update applies the given columns to a user
func (r *GormUserRepository) Update(id int64, columns map[string]any) (int64, error) {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(columns)
	return res.RowsAffected, res.Error
}

// UpdateLastLogin refreshes a user's last login timestamp
func (r *GormUserRepository) UpdateLastLogin(id int64, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// Delete hard-deletes a user and their role rows in one transaction.
// Deleting an already-deleted user affects zero rows and is not an error.
func (r *GormUserRepository) Delete(id int64) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// ListInactiveSince returns users whose last login predates cutoff
func (r *GormUserRepository) ListInactiveSince(cutoff time.Time) ([]models.User, error) {
	var users []models.User
	if err := r.db.
		Where("last_login_at < ?", cutoff).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/models"
)

// ListFilter holds the common listing options: an optional free-text
// search term and pagination bounds. Pagination is applied only when
// both Page and PerPage are positive.
type ListFilter struct {
	Search  string
	Page    int
	PerPage int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user, failing on a duplicate username
	Create(user *models.User) error

	// Upsert inserts a user, updating role, name and API key hash when
	// the username already exists
	Upsert(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id int64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(username string) (*models.User, error)

	// FindByUsernamePrefix finds a user by case-insensitive username prefix
	FindByUsernamePrefix(prefix string) (*models.User, error)

	// List retrieves users with filtering and pagination, plus the total
	// matching row count
	List(filter ListFilter) ([]models.User, int64, error)

	// Update applies the given columns to a user, returning the number
	// of rows affected
	Update(id int64, columns map[string]any) (int64, error)

	// UpdateLastLogin refreshes a user's last login timestamp
	UpdateLastLogin(id int64, at time.Time) error

	// Delete hard-deletes a user and their role rows. Deleting an
	// absent user is a no-op.
	Delete(id int64) (int64, error)

	// ListInactiveSince returns users whose last login predates cutoff
	ListInactiveSince(cutoff time.Time) ([]models.User, error)
}

// RoleRepository defines the interface for user project-role data access
type RoleRepository interface {
	// Upsert stores a role for a (user, project) pair, keeping the
	// higher-ranked of the stored and incoming roles. The resulting
	// (possibly unchanged) row is always returned.
	Upsert(userID int64, projectID uuid.UUID, role models.ProjectRole) (*models.UserRole, error)

	// ListByProject lists all role rows for one project
	ListByProject(projectID uuid.UUID) ([]models.UserRole, error)

	// ListByUser lists all role rows for one user
	ListByUser(userID int64) ([]models.UserRole, error)
}

// ProjectRepository defines the interface for project data access.
// All reads exclude soft-deleted rows.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uuid.UUID) (*models.Project, error)

	// List retrieves projects with filtering and pagination, plus the
	// total matching row count
	List(filter ListFilter) ([]models.Project, int64, error)

	// Update applies the given columns to a project, returning the
	// number of rows affected
	Update(id uuid.UUID, columns map[string]any) (int64, error)

	// SoftDelete stamps the deletion timestamp and clears the active
	// flag, returning the number of rows affected
	SoftDelete(id uuid.UUID) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id int64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, plus the
	// total matching row count
	List(filter ListFilter) ([]models.Task, int64, error)

	// Update applies the given columns to a task, returning the number
	// of rows affected
	Update(id int64, columns map[string]any) (int64, error)

	// Delete hard-deletes a task, returning the number of rows affected
	Delete(id int64) (int64, error)
}

// OrganisationRepository defines the interface for organisation data access
type OrganisationRepository interface {
	// ListManagedIDs returns the IDs of organisations managed by a user
	ListManagedIDs(userID int64) ([]int64, error)
}

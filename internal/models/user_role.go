package models

import "github.com/google/uuid"

// ProjectRole is a role assigned to a user for a specific project.
// Roles are ranked by declaration order; on upsert conflict the
// higher-ranked role wins.
type ProjectRole string

const (
	ProjectRoleMapper           ProjectRole = "MAPPER"
	ProjectRoleValidator        ProjectRole = "VALIDATOR"
	ProjectRoleFieldManager     ProjectRole = "FIELD_MANAGER"
	ProjectRoleAssociateManager ProjectRole = "ASSOCIATE_PROJECT_MANAGER"
	ProjectRoleProjectManager   ProjectRole = "PROJECT_MANAGER"
)

var projectRoleRanks = map[ProjectRole]int{
	ProjectRoleMapper:           1,
	ProjectRoleValidator:        2,
	ProjectRoleFieldManager:     3,
	ProjectRoleAssociateManager: 4,
	ProjectRoleProjectManager:   5,
}

// Rank returns the ordering of the role used for conflict resolution.
// Unknown roles rank below MAPPER.
func (r ProjectRole) Rank() int {
	return projectRoleRanks[r]
}

// Valid reports whether r is a known project role.
func (r ProjectRole) Valid() bool {
	_, ok := projectRoleRanks[r]
	return ok
}

// UserRole associates a user with a project role. At most one row exists
// per (user, project) pair. RoleRank mirrors Role so the rank comparison
// on upsert happens inside the database rather than in application code.
type UserRole struct {
	UserID    int64       `gorm:"primarykey" json:"user_id"`
	ProjectID uuid.UUID   `gorm:"type:uuid;primarykey" json:"project_id"`
	Role      ProjectRole `gorm:"type:varchar(30);not null" json:"role"`
	RoleRank  int         `gorm:"not null" json:"-"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

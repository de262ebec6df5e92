package dto

import (
	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/utils"
)

// UserListResponse is the paginated users payload
type UserListResponse struct {
	Results    []models.User        `json:"results"`
	Pagination utils.PaginationInfo `json:"pagination"`
}

// ProjectListResponse is the paginated projects payload
type ProjectListResponse struct {
	Results    []models.Project     `json:"results"`
	Pagination utils.PaginationInfo `json:"pagination"`
}

// TaskListResponse is the paginated tasks payload
type TaskListResponse struct {
	Results    []models.Task        `json:"results"`
	Pagination utils.PaginationInfo `json:"pagination"`
}

// UsernameDTO is the minimal user info for the usernames listing
type UsernameDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ToUsernameDTOs converts users to the minimal username listing
func ToUsernameDTOs(users []models.User) []UsernameDTO {
	out := make([]UsernameDTO, len(users))
	for i, user := range users {
		out[i] = UsernameDTO{ID: user.ID, Username: user.Username}
	}
	return out
}

// CreatedUserDTO is a newly registered user plus their plaintext API
// key, which is only ever returned here.
type CreatedUserDTO struct {
	models.User
	APIKey string `json:"api_key"`
}

// UserRoleDTO is a (user, project, role) triple
type UserRoleDTO struct {
	UserID    int64              `json:"user_id"`
	ProjectID uuid.UUID          `json:"project_id"`
	Role      models.ProjectRole `json:"role"`
}

// ToUserRoleDTOs converts role rows to triples
func ToUserRoleDTOs(roles []models.UserRole) []UserRoleDTO {
	out := make([]UserRoleDTO, len(roles))
	for i, role := range roles {
		out[i] = UserRoleDTO{
			UserID:    role.UserID,
			ProjectID: role.ProjectID,
			Role:      role.Role,
		}
	}
	return out
}

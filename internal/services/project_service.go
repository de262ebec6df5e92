package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectRole = errors.New("invalid project role")
)

// projectUpdateColumns maps updatable JSON field names to their columns.
var projectUpdateColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"status":      "status",
	"settings":    "settings",
	"is_active":   "is_active",
}

// ProjectService handles project business logic and project-role
// assignments.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	roleRepo    repository.RoleRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		roleRepo:    roleRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
	Settings    map[string]any
	OwnerID     int64
}

// Create creates a new project
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyPayload
	}

	status := input.Status
	if status == "" {
		status = "active"
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Settings:    datatypes.JSONMap(input.Settings),
		OwnerID:     input.OwnerID,
		IsActive:    true,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Get returns a project by ID. Soft-deleted projects are not found.
func (s *ProjectService) Get(id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// List returns projects matching the filter plus the total matching count
func (s *ProjectService) List(filter repository.ListFilter) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Update applies the fields present in raw to the project. Absent
// fields are left untouched; fields provided as null are applied.
func (s *ProjectService) Update(id uuid.UUID, raw map[string]any) (*models.Project, error) {
	columns := make(map[string]any)
	for field, value := range raw {
		column, ok := projectUpdateColumns[field]
		if !ok {
			continue
		}

		switch field {
		case "settings":
			if value != nil {
				m, ok := value.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%w: settings must be an object", ErrInvalidField)
				}
				value = datatypes.JSONMap(m)
			}
		case "is_active":
			if _, ok := value.(bool); !ok {
				return nil, fmt.Errorf("%w: is_active must be a boolean", ErrInvalidField)
			}
		}

		columns[column] = value
	}

	if len(columns) == 0 {
		return nil, ErrEmptyPayload
	}

	affected, err := s.projectRepo.Update(id, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	return project, nil
}

// Delete soft-deletes a project
func (s *ProjectService) Delete(id uuid.UUID) error {
	affected, err := s.projectRepo.SoftDelete(id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// AssignRole upserts a project role for a user. On conflict the
// higher-ranked of the stored and incoming roles wins; the resulting
// row is returned either way.
func (s *ProjectService) AssignRole(projectID uuid.UUID, userID int64, role models.ProjectRole) (*models.UserRole, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProjectRole, role)
	}

	if _, err := s.Get(projectID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	stored, err := s.roleRepo.Upsert(userID, projectID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert role: %w", err)
	}
	return stored, nil
}

// Users returns the (user, project, role) triples for one project
func (s *ProjectService) Users(projectID uuid.UUID) ([]models.UserRole, error) {
	if _, err := s.Get(projectID); err != nil {
		return nil, err
	}

	roles, err := s.roleRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project users: %w", err)
	}
	return roles, nil
}

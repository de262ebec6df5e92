package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openmapcollab/mapping-api/internal/dto"
	apierrors "github.com/openmapcollab/mapping-api/internal/errors"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"github.com/openmapcollab/mapping-api/internal/services"
	"github.com/openmapcollab/mapping-api/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid project id")
		return uuid.Nil, false
	}
	return id, true
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string         `json:"name" binding:"required"`
		Description string         `json:"description"`
		Status      string         `json:"status"`
		Settings    map[string]any `json:"settings"`
		OwnerID     int64          `json:"owner_id" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Settings:    req.Settings,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyPayload) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns a paginated project listing with optional search
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.List(repository.ListFilter{
		Search:  c.Query("search"),
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Results:    projects,
		Pagination: utils.GetPagination(params.Page, params.PerPage, total),
	})
}

// GetProject returns a specific project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject applies a partial update to a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(id, raw)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPayload), errors.Is(err, services.ErrInvalidField):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update project")
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject soft-deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProjectUsers returns the project's users and their roles
func (h *ProjectHandler) ListProjectUsers(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	roles, err := h.projectService.Users(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch project users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserRoleDTOs(roles))
}

// AssignProjectRole upserts a project role for a user. The stored role
// only changes when the incoming role ranks higher.
func (h *ProjectHandler) AssignProjectRole(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	type AssignRoleRequest struct {
		Role models.ProjectRole `json:"role" binding:"required"`
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.projectService.AssignRole(id, userID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProjectRole):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to assign role")
		}
		return
	}

	c.JSON(http.StatusOK, dto.UserRoleDTO{
		UserID:    role.UserID,
		ProjectID: role.ProjectID,
		Role:      role.Role,
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openmapcollab/mapping-api/internal/dto"
	apierrors "github.com/openmapcollab/mapping-api/internal/errors"
	"github.com/openmapcollab/mapping-api/internal/middleware"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"github.com/openmapcollab/mapping-api/internal/services"
	"github.com/openmapcollab/mapping-api/internal/utils"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns a paginated user listing with optional search
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(repository.ListFilter{
		Search:  c.Query("search"),
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Results:    users,
		Pagination: utils.GetPagination(params.Page, params.PerPage, total),
	})
}

// ListUsernames returns the unpaginated id/username listing
func (h *UserHandler) ListUsernames(c *gin.Context) {
	users, err := h.userService.Usernames(c.Query("search"))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUsernameDTOs(users))
}

// GetRoleOptions returns the available site-wide role options
func (h *UserHandler) GetRoleOptions(c *gin.Context) {
	options := make(map[string]models.Role, len(models.Roles))
	for _, role := range models.Roles {
		options[string(role)] = role
	}
	c.JSON(http.StatusOK, options)
}

// CreateUser registers a new user. With ?ignore_conflict=true an
// existing username is refreshed instead of rejected.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		ID              int64       `json:"id" binding:"required"`
		Username        string      `json:"username" binding:"required"`
		Role            models.Role `json:"role"`
		ProfileImg      *string     `json:"profile_img"`
		Name            *string     `json:"name"`
		City            *string     `json:"city"`
		Country         *string     `json:"country"`
		EmailAddress    *string     `json:"email_address"`
		IsEmailVerified bool        `json:"is_email_verified"`
		IsExpert        bool        `json:"is_expert"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ignoreConflict := c.Query("ignore_conflict") == "true"

	user, apiKey, err := h.userService.Create(services.CreateUserInput{
		ID:              req.ID,
		Username:        req.Username,
		Role:            req.Role,
		ProfileImg:      req.ProfileImg,
		Name:            req.Name,
		City:            req.City,
		Country:         req.Country,
		EmailAddress:    req.EmailAddress,
		IsEmailVerified: req.IsEmailVerified,
		IsExpert:        req.IsExpert,
	}, ignoreConflict)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrEmptyPayload), errors.Is(err, services.ErrInvalidRole):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedUserDTO{User: *user, APIKey: apiKey})
}

// GetUser returns a single user by ID, falling back to a username
// prefix search when the identifier is not numeric.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, raw)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPayload),
			errors.Is(err, services.ErrInvalidRole),
			errors.Is(err, services.ErrInvalidField):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update user")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user by ID or username
func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, err := h.userService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	if actorID, ok := middleware.GetUserID(c); ok {
		log.Printf("User %d attempting deletion of user %s", actorID, user.Username)
	}

	if err := h.userService.Delete(user.ID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

// ProcessInactiveUsers deletes accounts past the inactivity threshold
func (h *UserHandler) ProcessInactiveUsers(c *gin.Context) {
	log.Println("Start processing inactive users")
	deleted, err := h.userService.ProcessInactiveUsers(time.Now().UTC())
	if err != nil {
		apierrors.InternalError(c, "Failed to process inactive users")
		return
	}
	log.Printf("Finished processing inactive users: %d deleted", deleted)

	c.Status(http.StatusNoContent)
}

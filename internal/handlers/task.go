package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openmapcollab/mapping-api/internal/dto"
	apierrors "github.com/openmapcollab/mapping-api/internal/errors"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"github.com/openmapcollab/mapping-api/internal/services"
	"github.com/openmapcollab/mapping-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return 0, false
	}
	return id, true
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		IsCompleted bool       `json:"is_completed"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, services.ErrTitleEmpty) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks returns a paginated task listing with optional search
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.List(repository.ListFilter{
		Search:  c.Query("search"),
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Results:    tasks,
		Pagination: utils.GetPagination(params.Page, params.PerPage, total),
	})
}

// UpdateTask applies a partial update to a task. Only the fields
// present in the body are touched; due_date provided as null clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(id, raw)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPayload),
			errors.Is(err, services.ErrTitleEmpty),
			errors.Is(err, services.ErrInvalidField):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask hard-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

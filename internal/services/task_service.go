package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTitleEmpty   = errors.New("title cannot be empty")
)

// taskUpdateColumns maps updatable JSON field names to their columns.
var taskUpdateColumns = map[string]string{
	"title":        "title",
	"description":  "description",
	"due_date":     "due_date",
	"is_completed": "is_completed",
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	IsCompleted bool
}

// Create creates a new task
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleEmpty
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		IsCompleted: input.IsCompleted,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Get returns a task by ID
func (s *TaskService) Get(id int64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// List returns tasks matching the filter plus the total matching count
func (s *TaskService) List(filter repository.ListFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Update applies the fields present in raw to the task. Absent fields
// are left untouched; a due_date provided as null clears it.
func (s *TaskService) Update(id int64, raw map[string]any) (*models.Task, error) {
	columns := make(map[string]any)
	for field, value := range raw {
		column, ok := taskUpdateColumns[field]
		if !ok {
			continue
		}

		switch field {
		case "title":
			str, ok := value.(string)
			if !ok || strings.TrimSpace(str) == "" {
				return nil, ErrTitleEmpty
			}
		case "due_date":
			if value != nil {
				str, ok := value.(string)
				if !ok {
					return nil, fmt.Errorf("%w: due_date must be a timestamp", ErrInvalidField)
				}
				parsed, err := time.Parse(time.RFC3339, str)
				if err != nil {
					return nil, fmt.Errorf("%w: due_date must be a timestamp", ErrInvalidField)
				}
				value = parsed
			}
		case "is_completed":
			if _, ok := value.(bool); !ok {
				return nil, fmt.Errorf("%w: is_completed must be a boolean", ErrInvalidField)
			}
		}

		columns[column] = value
	}

	if len(columns) == 0 {
		return nil, ErrEmptyPayload
	}

	affected, err := s.taskRepo.Update(id, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}

// Delete hard-deletes a task
func (s *TaskService) Delete(id int64) error {
	affected, err := s.taskRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return nil
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"github.com/openmapcollab/mapping-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Task{})
	suite.Require().NoError(err)

	handler := NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(suite.db)))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.GET("/tasks", handler.ListTasks)
	suite.router.POST("/tasks", handler.CreateTask)
	suite.router.GET("/tasks/:id", handler.GetTask)
	suite.router.PATCH("/tasks/:id", handler.UpdateTask)
	suite.router.DELETE("/tasks/:id", handler.DeleteTask)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestTask(title string) *models.Task {
	task := &models.Task{Title: title}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	w := suite.request("POST", "/tasks", map[string]any{
		"title":       "Trace buildings",
		"description": "Residential area, north quadrant",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Trace buildings", response.Title)
	assert.False(suite.T(), response.IsCompleted)
	assert.NotZero(suite.T(), response.ID)
}

// TestCreateTask_MissingTitle tests that a body without a title is
// rejected before anything is stored
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	w := suite.request("POST", "/tasks", map[string]any{
		"description": "No title here",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestListTasks_Search tests listing with a search filter
func (suite *TaskHandlerTestSuite) TestListTasks_Search() {
	suite.createTestTask("Trace buildings")
	suite.createTestTask("Validate roads")

	w := suite.request("GET", "/tasks?search=roads", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "results")
	assert.Contains(suite.T(), response, "pagination")

	results := response["results"].([]interface{})
	assert.Len(suite.T(), results, 1)

	pagination := response["pagination"].(map[string]interface{})
	assert.EqualValues(suite.T(), 1, pagination["total"])
	assert.EqualValues(suite.T(), 1, pagination["pages"])
}

// TestGetTask_NotFound tests retrieval of a missing task
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	w := suite.request("GET", "/tasks/9999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateTask_Partial tests that only the sent field changes and the
// update timestamp advances
func (suite *TaskHandlerTestSuite) TestUpdateTask_Partial() {
	desc := "Residential area"
	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	task := &models.Task{Title: "Trace buildings", Description: &desc, DueDate: &due}
	suite.Require().NoError(suite.db.Create(task).Error)

	// Backdate updated_at so the advance is observable
	past := time.Now().Add(-time.Hour).UTC()
	suite.Require().NoError(
		suite.db.Model(task).UpdateColumn("updated_at", past).Error)

	w := suite.request("PATCH", fmt.Sprintf("/tasks/%d", task.ID), map[string]any{
		"is_completed": true,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), response.IsCompleted)
	assert.Equal(suite.T(), "Trace buildings", response.Title)
	assert.NotNil(suite.T(), response.Description)
	assert.NotNil(suite.T(), response.DueDate)
	assert.True(suite.T(), response.UpdatedAt.After(past))
}

// TestUpdateTask_NullDueDate tests clearing due_date with an explicit null
func (suite *TaskHandlerTestSuite) TestUpdateTask_NullDueDate() {
	due := time.Now().Add(24 * time.Hour)
	task := &models.Task{Title: "Trace buildings", DueDate: &due}
	suite.Require().NoError(suite.db.Create(task).Error)

	w := suite.request("PATCH", fmt.Sprintf("/tasks/%d", task.ID), map[string]any{
		"due_date": nil,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.DueDate)
}

// TestUpdateTask_EmptyPayload tests that a body with no updatable
// fields is rejected
func (suite *TaskHandlerTestSuite) TestUpdateTask_EmptyPayload() {
	task := suite.createTestTask("Trace buildings")

	w := suite.request("PATCH", fmt.Sprintf("/tasks/%d", task.ID), map[string]any{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("PATCH", fmt.Sprintf("/tasks/%d", task.ID), map[string]any{
		"id": 42,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_EmptyTitle tests that blanking the title is rejected
func (suite *TaskHandlerTestSuite) TestUpdateTask_EmptyTitle() {
	task := suite.createTestTask("Trace buildings")

	w := suite.request("PATCH", fmt.Sprintf("/tasks/%d", task.ID), map[string]any{
		"title": "   ",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_NotFound tests updating a missing task
func (suite *TaskHandlerTestSuite) TestUpdateTask_NotFound() {
	w := suite.request("PATCH", "/tasks/9999", map[string]any{
		"is_completed": true,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteTask_Success tests successful task deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	task := suite.createTestTask("Task to delete")

	w := suite.request("DELETE", fmt.Sprintf("/tasks/%d", task.ID), nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	// Row is gone entirely
	var count int64
	suite.db.Unscoped().Model(&models.Task{}).Count(&count)
	assert.EqualValues(suite.T(), 0, count)
}

// TestDeleteTask_NotFound tests deleting a missing task
func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	w := suite.request("DELETE", "/tasks/9999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/openmapcollab/mapping-api/internal/errors"
	"gorm.io/gorm"
)

// HealthHandler reports whether storage is reachable.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check runs a trivial query against storage. Failure detail is logged,
// not returned, so storage internals never leak to the caller.
func (h *HealthHandler) Check(c *gin.Context) {
	var result int
	if err := h.db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Printf("Health check failed: %v", err)
		apierrors.ServiceUnavailable(c, "Service unhealthy")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

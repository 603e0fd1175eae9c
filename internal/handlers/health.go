package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// CheckHealth reports liveness and database reachability.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	status := "ok"
	code := 200

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		code = 503
	}

	c.JSON(code, gin.H{"status": status, "service": "shiftwise"})
}

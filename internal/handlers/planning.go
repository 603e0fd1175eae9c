package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/pkg/response"
	"gorm.io/gorm"
)

// PlanningHandler exposes the planning-month window maintained by the
// scheduling task.
type PlanningHandler struct {
	db *gorm.DB
}

func NewPlanningHandler(db *gorm.DB) *PlanningHandler {
	return &PlanningHandler{db: db}
}

// List returns the planning months, oldest first.
// GET /api/planning-months
func (h *PlanningHandler) List(c *gin.Context) {
	var months []models.PlanningMonth
	if err := h.db.Order("date").Find(&months).Error; err != nil {
		response.ServerError(c, "failed to list planning months")
		return
	}
	response.Success(c, months)
}

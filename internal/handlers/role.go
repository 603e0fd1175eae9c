package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shiftwise/backend/internal/services"
	"github.com/shiftwise/backend/pkg/response"
)

type RoleHandler struct {
	roles *services.RoleService
}

func NewRoleHandler(roles *services.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List returns all roles.
// GET /api/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.FindAll()
	if err != nil {
		response.ServerError(c, "failed to list roles")
		return
	}
	response.Success(c, roles)
}

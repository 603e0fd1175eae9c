package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftwise/backend/internal/middleware"
	"github.com/shiftwise/backend/internal/services"
	"github.com/shiftwise/backend/pkg/response"
)

// UserHandler exposes account administration. Accounts are provisioned
// here by an admin; the login path never creates them.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users with their roles.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.ServerError(c, "failed to list users")
		return
	}
	response.Success(c, users)
}

// GetByID returns a single user.
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		response.ServerError(c, "failed to load user")
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

// Create provisions a new account.
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Conflict(c, "failed to create user")
		return
	}
	response.Created(c, user)
}

// Update changes a user's name, active flag and roles.
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Update(id, &req)
	if err != nil {
		response.ServerError(c, "failed to update user")
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

// Delete removes an account. Its refresh tokens become unresolvable
// immediately; outstanding access tokens lapse at their 15 minute expiry.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.users.Delete(id); err != nil {
		response.ServerError(c, "failed to delete user")
		return
	}
	response.Success(c, nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

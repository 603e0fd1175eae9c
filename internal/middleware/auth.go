package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shiftwise/backend/internal/utils"
	"github.com/shiftwise/backend/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextName   = "user_name"
	ContextRoles  = "user_roles"
)

// AuthRequired checks for a valid Bearer access token and puts its claims
// on the request context.
func AuthRequired(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		claims, err := jwtManager.Parse(parts[1])
		if err != nil {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextName, claims.Name)
		c.Set(ContextRoles, claims.Roles)

		c.Next()
	}
}

// RoleRequired checks that the authenticated user carries the given role.
// Must run after AuthRequired.
func RoleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, r := range GetRoles(c) {
			if r == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient role")
		c.Abort()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetName gets the current user's display name from context.
func GetName(c *gin.Context) string {
	if name, exists := c.Get(ContextName); exists {
		return name.(string)
	}
	return ""
}

// GetRoles gets the current user's role names from context.
func GetRoles(c *gin.Context) []string {
	if roles, exists := c.Get(ContextRoles); exists {
		return roles.([]string)
	}
	return nil
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shiftwise/backend/internal/middleware"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/internal/services"
	"github.com/shiftwise/backend/pkg/logger"
	"github.com/shiftwise/backend/pkg/response"
)

// RefreshCookieName is the cookie that carries the refresh token between
// client and server.
const RefreshCookieName = "refresh_token"

type AuthHandler struct {
	login    *services.LoginService
	sessions *services.SessionService
	users    *services.UserService
}

func NewAuthHandler(login *services.LoginService, sessions *services.SessionService, users *services.UserService) *AuthHandler {
	return &AuthHandler{
		login:    login,
		sessions: sessions,
		users:    users,
	}
}

type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges a Google ID token for a session.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "id_token required")
		return
	}

	access, refresh, err := h.login.Login(c.Request.Context(), req.IDToken, c.ClientIP())
	if err != nil {
		h.unauthorized(c, err)
		return
	}

	h.setRefreshCookie(c, refresh)
	c.JSON(http.StatusOK, AccessTokenResponse{AccessToken: access})
}

// Logout revokes the presented refresh token. Revocation happens even when
// the token has already expired; that is logged, not reported as a failure.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := c.Cookie(RefreshCookieName)
	if err != nil || rawToken == "" {
		response.Forbidden(c, "missing refresh token")
		return
	}

	wasExpired, err := h.sessions.Revoke(rawToken)
	if err != nil {
		if errors.Is(err, services.ErrTokenNotFound) {
			response.Forbidden(c, "missing refresh token")
			return
		}
		logger.Error().Err(err).Msg("logout: revoke failed")
		response.ServerError(c, "internal error")
		return
	}

	if wasExpired {
		logger.Info().Msg("logout: token was already expired")
	}

	h.clearRefreshCookie(c)
	response.Success(c, nil)
}

// NewAccessToken mints a fresh access token from the refresh cookie without
// rotating it.
// POST /api/auth/access
func (h *AuthHandler) NewAccessToken(c *gin.Context) {
	rawToken, err := c.Cookie(RefreshCookieName)
	if err != nil || rawToken == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	access, err := h.sessions.IssueAccess(rawToken)
	if err != nil {
		h.unauthorized(c, err)
		return
	}

	c.JSON(http.StatusOK, AccessTokenResponse{AccessToken: access})
}

// NewRefreshToken rotates the refresh cookie.
// POST /api/auth/refresh
func (h *AuthHandler) NewRefreshToken(c *gin.Context) {
	rawToken, err := c.Cookie(RefreshCookieName)
	if err != nil || rawToken == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	_, next, err := h.sessions.Rotate(rawToken, c.ClientIP())
	if err != nil {
		h.unauthorized(c, err)
		return
	}

	h.setRefreshCookie(c, next)
	c.JSON(http.StatusOK, true)
}

// GetCurrentUser returns the authenticated user with roles.
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.users.FindByID(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, "internal error")
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

// unauthorized maps a login/rotation failure to the boundary. Every
// taxonomy value gets the same body and status so the cause cannot be
// distinguished by the caller; only corrupted server state surfaces as 500.
func (h *AuthHandler) unauthorized(c *gin.Context, err error) {
	if errors.Is(err, services.ErrIncompleteIdentity) {
		logger.Error().Err(err).Msg("auth: incomplete identity")
		response.ServerError(c, "internal error")
		return
	}
	response.Unauthorized(c, "unauthorized")
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token *models.RefreshToken) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token.Token,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/shiftwise/backend/internal/config"
	"github.com/shiftwise/backend/internal/middleware"
	"github.com/shiftwise/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(&cfg.CORS))

	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst)

	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Auth routes. Login, access and refresh are public: the first
		// carries the identity assertion, the other two the refresh cookie.
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/access", svc.authHandler.NewAccessToken)
			auth.POST("/refresh", svc.authHandler.NewRefreshToken)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.jwtManager))
		{
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			protected.GET("/planning-months", svc.planningHandler.List)

			admin := protected.Group("")
			admin.Use(middleware.RoleRequired("admin"))
			{
				admin.GET("/users", svc.userHandler.List)
				admin.POST("/users", svc.userHandler.Create)
				admin.GET("/users/:id", svc.userHandler.GetByID)
				admin.PUT("/users/:id", svc.userHandler.Update)
				admin.DELETE("/users/:id", svc.userHandler.Delete)

				admin.GET("/roles", svc.roleHandler.List)
			}
		}
	}
}

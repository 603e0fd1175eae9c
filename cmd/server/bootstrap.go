package main

import (
	"context"

	"github.com/shiftwise/backend/internal/config"
	"github.com/shiftwise/backend/internal/handlers"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/internal/services"
	"github.com/shiftwise/backend/internal/utils"
	"github.com/shiftwise/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the
// application. Everything is constructed once here and passed by reference;
// the database handle is the only shared mutable resource.
type appServices struct {
	jwtManager      *utils.JWTManager
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	roleHandler     *handlers.RoleHandler
	planningHandler *handlers.PlanningHandler
	healthHandler   *handlers.HealthHandler
}

// bootstrap initializes the database, services, and background tasks. The
// ctx cancels the background loops on shutdown.
func bootstrap(ctx context.Context, cfg *config.Config) *appServices {
	db, err := models.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(db, cfg.Auth.BootstrapAdminEmail); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	verifier, err := services.NewOIDCVerifier(ctx, &cfg.Google)
	if err != nil {
		logger.Fatalf("Failed to initialize identity verifier: %v", err)
	}

	jwtManager := utils.NewJWTManager(&cfg.JWT)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db, jwtManager, &cfg.Auth)
	sessionService := services.NewSessionService(db, tokenService)
	loginService := services.NewLoginService(verifier, userService, tokenService)

	// Background tasks share the periodic runner: start delay, cycle,
	// catch-log-continue, interruptible sleep.
	services.NewRetentionService(db, &cfg.Auth).Start(ctx)
	schedulingService := services.NewSchedulingService(db, &cfg.Scheduling)
	schedulingService.Start(ctx)

	return &appServices{
		jwtManager:      jwtManager,
		authHandler:     handlers.NewAuthHandler(loginService, sessionService, userService),
		userHandler:     handlers.NewUserHandler(userService),
		roleHandler:     handlers.NewRoleHandler(services.NewRoleService(db)),
		planningHandler: handlers.NewPlanningHandler(db),
		healthHandler:   handlers.NewHealthHandler(db),
	}
}

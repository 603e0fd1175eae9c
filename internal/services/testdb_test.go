package services

import (
	"fmt"
	"testing"

	"github.com/shiftwise/backend/internal/config"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory SQLite database. The DSN embeds the
// test name so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		RefreshTokenDays:  7,
		RetentionDays:     30,
		SweepIntervalDays: 7,
	}
}

func testTokenService(db *gorm.DB) *TokenService {
	jwtManager := utils.NewJWTManager(&config.JWTConfig{
		Secret:        "test-secret-for-service-tests",
		Issuer:        "shiftwise-test",
		Audience:      "shiftwise-test-web",
		ExpireMinutes: 15,
	})
	return NewTokenService(db, jwtManager, testAuthConfig())
}

// createTestUser provisions a linked, named account the way a first login
// would have left it.
func createTestUser(t *testing.T, db *gorm.DB, email string, active bool) *models.User {
	t.Helper()

	name := "Test User"
	googleID := "google-subject-" + email
	user := &models.User{
		Email:    email,
		Name:     &name,
		GoogleID: &googleID,
		Active:   active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

package models

import (
	"fmt"

	"github.com/shiftwise/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Role{},
		&RefreshToken{},
		&PlanningMonth{},
	)
}

// DefaultRoles are created on first start if missing.
var DefaultRoles = []string{"admin", "planner", "employee"}

// SeedDefaultData creates the default roles and, when adminEmail is
// non-empty, an active admin account for it.
func SeedDefaultData(db *gorm.DB, adminEmail string) error {
	for _, name := range DefaultRoles {
		var count int64
		db.Model(&Role{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := db.Create(&Role{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	if adminEmail == "" {
		return nil
	}

	var count int64
	db.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	var admin Role
	if err := db.Where("name = ?", "admin").First(&admin).Error; err != nil {
		return err
	}

	user := User{
		Email:  adminEmail,
		Active: true,
		Roles:  []Role{admin},
	}
	return db.Create(&user).Error
}

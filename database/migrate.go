package database

import (
	"fmt"

	"kidhub_backend/internal/config"
	"kidhub_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM по настройкам из конфига.
// Driver sqlite используется в тестах и локальной разработке.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	gormDB = db
	return db, nil
}

// Open открывает соединение с выбранным драйвером.
// TranslateError включен, чтобы нарушения уникальных индексов приходили
// как gorm.ErrDuplicatedKey независимо от драйвера.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}

	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), gormConfig)
	case "postgres", "":
		return gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// AutoMigrate выполняет миграцию всех моделей.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Neighborhood{},
		&models.School{},
		&models.Activity{},
		&models.Lead{},
		&models.Review{},
	)
}

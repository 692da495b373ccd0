package database

import (
	"github.com/Luapxanna/ops-pilot/internal/logging"
	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	if err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Project{},
		&models.Workflow{},
		&models.Task{},
		&models.TimeLog{},
		&models.AuditLog{},
	); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Database connected and migrated (%s)", path)
	return db, nil
}

package repository

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite открывает локальную базу для режима без REST-бэкенда
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// In-memory база живет, пока открыто соединение
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	return db, nil
}

// NewGormBackend создает все репозитории поверх одной БД
func NewGormBackend(db *gorm.DB) (*Backend, error) {
	establishments, err := NewGormEstablishmentRepository(db)
	if err != nil {
		return nil, err
	}
	users, err := NewGormUserRepository(db)
	if err != nil {
		return nil, err
	}
	templates, err := NewGormShiftTemplateRepository(db)
	if err != nil {
		return nil, err
	}
	shifts, err := NewGormShiftRepository(db)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Establishments: establishments,
		Users:          users,
		Templates:      templates,
		Shifts:         shifts,
	}, nil
}

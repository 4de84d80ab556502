package repository

import (
	"context"
	"net/http"
	"strings"

	"planning-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormEstablishmentRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEstablishmentRepository(db *gorm.DB) (*GormEstablishmentRepository, error) {
	logger := newLogger()

	// Автомиграция
	if err := db.AutoMigrate(&models.Establishment{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate establishments table")
		return nil, err
	}

	return &GormEstablishmentRepository{db: db, logger: logger}, nil
}

func (r *GormEstablishmentRepository) List(ctx context.Context) ([]models.Establishment, error) {
	var establishments []models.Establishment
	result := r.db.WithContext(ctx).Order("id").Find(&establishments)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list establishments")
		return nil, unavailable(result.Error)
	}

	return establishments, nil
}

func (r *GormEstablishmentRepository) Create(ctx context.Context, establishment *models.Establishment) error {
	if strings.TrimSpace(establishment.Name) == "" {
		return Rejected(http.StatusUnprocessableEntity, "name is required")
	}

	result := r.db.WithContext(ctx).Create(establishment)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create establishment")
		return unavailable(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":   establishment.ID,
		"name": establishment.Name,
	}).Info("Establishment created successfully")

	return nil
}

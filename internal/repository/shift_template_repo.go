package repository

import (
	"context"

	"planning-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormShiftTemplateRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftTemplateRepository(db *gorm.DB) (*GormShiftTemplateRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ShiftTemplate{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_templates table")
		return nil, err
	}

	logger.Info("Shift template repository initialized")

	return &GormShiftTemplateRepository{db: db, logger: logger}, nil
}

func (r *GormShiftTemplateRepository) List(ctx context.Context, establishmentID uint) ([]models.ShiftTemplate, error) {
	query := r.db.WithContext(ctx).Order("start_time, id")
	if establishmentID != 0 {
		query = query.Where("establishment_id = ?", establishmentID)
	}

	var templates []models.ShiftTemplate
	if result := query.Find(&templates); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list shift templates")
		return nil, unavailable(result.Error)
	}

	return templates, nil
}

func (r *GormShiftTemplateRepository) Create(ctx context.Context, template *models.ShiftTemplate) error {
	r.logger.WithFields(logrus.Fields{
		"establishment_id": template.EstablishmentID,
		"name":             template.Name,
	}).Info("Creating shift template")

	if result := r.db.WithContext(ctx).Create(template); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create shift template")
		return unavailable(result.Error)
	}

	r.logger.WithField("id", template.ID).Info("Shift template created successfully")
	return nil
}

func (r *GormShiftTemplateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ShiftTemplate{}, id)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete shift template")
		return unavailable(result.Error)
	}

	if result.RowsAffected == 0 {
		return notFound("shift template", id)
	}

	r.logger.WithField("id", id).Info("Shift template deleted")
	return nil
}

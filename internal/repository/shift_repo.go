package repository

import (
	"context"
	"errors"

	"planning-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormShiftRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftRepository(db *gorm.DB) (*GormShiftRepository, error) {
	logger := newLogger()

	// Автомиграция
	if err := db.AutoMigrate(&models.Shift{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shifts table")
		return nil, err
	}

	logger.Info("Shift repository initialized")

	return &GormShiftRepository{db: db, logger: logger}, nil
}

// List - смены сотрудников заведения, упорядоченные по началу
func (r *GormShiftRepository) List(ctx context.Context, establishmentID uint) ([]models.Shift, error) {
	query := r.db.WithContext(ctx).Order("planned_start, id")
	if establishmentID != 0 {
		staff := r.db.Model(&models.User{}).Select("id").Where("establishment_id = ?", establishmentID)
		query = query.Where("user_id IN (?)", staff)
	}

	var shifts []models.Shift
	if result := query.Find(&shifts); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list shifts")
		return nil, unavailable(result.Error)
	}

	return shifts, nil
}

func (r *GormShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	r.logger.WithFields(logrus.Fields{
		"user_id": shift.UserID,
		"type":    shift.Type,
		"start":   shift.PlannedStart.String(),
	}).Info("Creating shift")

	if err := r.checkUser(ctx, shift.UserID); err != nil {
		return err
	}

	shift.ID = 0
	if result := r.db.WithContext(ctx).Create(shift); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create shift")
		return unavailable(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":      shift.ID,
		"user_id": shift.UserID,
	}).Info("Shift created successfully")

	return nil
}

func (r *GormShiftRepository) Update(ctx context.Context, id uint, shift *models.Shift) error {
	r.logger.WithField("id", id).Info("Updating shift")

	// Проверяем существование
	var existing models.Shift
	result := r.db.WithContext(ctx).First(&existing, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Warn("Shift not found for update")
		return notFound("shift", id)
	}
	if result.Error != nil {
		return unavailable(result.Error)
	}

	if err := r.checkUser(ctx, shift.UserID); err != nil {
		return err
	}

	shift.ID = id
	if result := r.db.WithContext(ctx).Save(shift); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update shift")
		return unavailable(result.Error)
	}

	return nil
}

func (r *GormShiftRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Shift{}, id)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete shift")
		return unavailable(result.Error)
	}

	if result.RowsAffected == 0 {
		return notFound("shift", id)
	}

	r.logger.WithField("id", id).Info("Shift deleted")
	return nil
}

func (r *GormShiftRepository) checkUser(ctx context.Context, userID uint) error {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count)
	if result.Error != nil {
		return unavailable(result.Error)
	}
	if count == 0 {
		return notFound("user", userID)
	}
	return nil
}

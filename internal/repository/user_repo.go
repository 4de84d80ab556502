package repository

import (
	"context"
	"errors"
	"net/http"

	"planning-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := newLogger()

	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{db: db, logger: logger}, nil
}

func (r *GormUserRepository) List(ctx context.Context, establishmentID uint) ([]models.User, error) {
	query := r.db.WithContext(ctx).Order("id")
	if establishmentID != 0 {
		query = query.Where("establishment_id = ?", establishmentID)
	}

	var users []models.User
	if result := query.Find(&users); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list users")
		return nil, unavailable(result.Error)
	}

	return users, nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, notFound("user", id)
	}

	if result.Error != nil {
		return nil, unavailable(result.Error)
	}

	return &user, nil
}

func (r *GormUserRepository) Update(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error) {
	r.logger.WithField("id", id).Info("Updating user")

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		taken, err := r.emailTaken(ctx, *upd.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, Rejected(http.StatusBadRequest, "email already registered")
		}
	}

	upd.Apply(user)

	if result := r.db.WithContext(ctx).Save(user); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user")
		return nil, unavailable(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":   user.ID,
		"role": user.Role,
	}).Info("User updated successfully")

	return user, nil
}

// Invite создает сотрудника без пароля
func (r *GormUserRepository) Invite(ctx context.Context, user *models.User) error {
	r.logger.WithFields(logrus.Fields{
		"email":            user.Email,
		"establishment_id": user.EstablishmentID,
	}).Info("Inviting user")

	// Проверяем, существует ли уже пользователь
	taken, err := r.emailTaken(ctx, user.Email)
	if err != nil {
		return err
	}
	if taken {
		return Rejected(http.StatusBadRequest, "email already registered")
	}

	if user.Role == "" {
		user.Role = models.RoleEmployee
	}

	if result := r.db.WithContext(ctx).Create(user); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return unavailable(result.Error)
	}

	return nil
}

func (r *GormUserRepository) emailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count)

	if result.Error != nil {
		return false, unavailable(result.Error)
	}

	return count > 0, nil
}

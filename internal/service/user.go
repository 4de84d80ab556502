package service

import (
	"context"
	"fmt"

	"planning-bot/internal/metrics"
	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, logger: newLogger()}
}

// List возвращает сотрудников заведения
func (s *UserService) List(ctx context.Context, establishmentID uint) ([]models.User, error) {
	users, err := s.repo.List(ctx, establishmentID)
	if err != nil {
		s.logger.WithError(err).WithField("establishment_id", establishmentID).Error("Failed to list users")
		return nil, err
	}
	return users, nil
}

// Get возвращает сотрудника по id
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to get user")
		return nil, err
	}
	return user, nil
}

// Invite создает сотрудника в заведении
func (s *UserService) Invite(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	if err := planning.ValidateUser(*user); err != nil {
		metrics.IncValidationRejected("user")
		return err
	}

	if err := s.repo.Invite(ctx, user); err != nil {
		s.logger.WithError(err).WithField("email", user.Email).Error("Failed to invite user")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":               user.ID,
		"establishment_id": user.EstablishmentID,
	}).Info("User invited")
	return nil
}

// Update частично обновляет профиль сотрудника
func (s *UserService) Update(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error) {
	if upd.HourlyRate != nil && upd.HourlyRate.IsNegative() {
		metrics.IncValidationRejected("user")
		return nil, fmt.Errorf("%w: hourly_rate must not be negative", planning.ErrInvalidUser)
	}
	if upd.Role != nil && !upd.Role.IsValid() {
		metrics.IncValidationRejected("user")
		return nil, fmt.Errorf("%w: unknown role %q", planning.ErrInvalidUser, *upd.Role)
	}

	user, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to update user")
		return nil, err
	}

	s.logger.WithField("id", id).Info("User updated")
	return user, nil
}

// SetHourlyRate меняет почасовую ставку
func (s *UserService) SetHourlyRate(ctx context.Context, id uint, rate decimal.Decimal) (*models.User, error) {
	return s.Update(ctx, id, models.UserUpdate{HourlyRate: &rate})
}

package service

import (
	"context"
	"errors"
	"time"

	"planning-bot/internal/metrics"
	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type ShiftService struct {
	repo   repository.ShiftRepository
	logger *logrus.Logger
}

func NewShiftService(repo repository.ShiftRepository) *ShiftService {
	return &ShiftService{repo: repo, logger: newLogger()}
}

func (s *ShiftService) List(ctx context.Context, establishmentID uint) ([]models.Shift, error) {
	shifts, err := s.repo.List(ctx, establishmentID)
	if err != nil {
		s.logger.WithError(err).WithField("establishment_id", establishmentID).Error("Failed to list shifts")
		return nil, err
	}
	return shifts, nil
}

// Create проверяет черновик и создает смену. Ошибка проверки возвращается до запроса к бэкенду
func (s *ShiftService) Create(ctx context.Context, draft planning.ShiftDraft) (*models.Shift, error) {
	shift, err := s.validate(draft)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": shift.UserID,
		"type":    shift.Type,
		"start":   shift.PlannedStart.String(),
	}).Info("Creating shift")

	if err := s.repo.Create(ctx, &shift); err != nil {
		s.logger.WithError(err).WithField("user_id", shift.UserID).Error("Failed to create shift")
		return nil, err
	}

	metrics.IncShiftCreated(string(shift.Type))
	s.logger.WithField("id", shift.ID).Info("Shift created successfully")
	return &shift, nil
}

// ApplyTemplate создает смену по шаблону. applicable=false - день не отмечен в шаблоне,
// смена все равно создается
func (s *ShiftService) ApplyTemplate(ctx context.Context, tpl models.ShiftTemplate, userID uint, date time.Time) (shift *models.Shift, applicable bool, err error) {
	draft, err := planning.ApplyTemplate(tpl, date)
	if err != nil {
		metrics.IncValidationRejected(validationKind(err))
		return nil, false, err
	}
	draft.UserID = userID

	applicable = planning.IsApplicableOn(tpl, date)
	if !applicable {
		s.logger.WithFields(logrus.Fields{
			"template_id": tpl.ID,
			"date":        draft.Day().Format("2006-01-02"),
		}).Warn("Template applied outside its usual days")
	}

	shift, err = s.Create(ctx, draft)
	return shift, applicable, err
}

// Replace полностью заменяет смену
func (s *ShiftService) Replace(ctx context.Context, id uint, draft planning.ShiftDraft) (*models.Shift, error) {
	shift, err := s.validate(draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, &shift); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to update shift")
		return nil, err
	}

	s.logger.WithField("id", id).Info("Shift replaced")
	return &shift, nil
}

func (s *ShiftService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to delete shift")
		return err
	}

	s.logger.WithField("id", id).Info("Shift deleted")
	return nil
}

func (s *ShiftService) validate(draft planning.ShiftDraft) (models.Shift, error) {
	shift, err := planning.ValidateDraft(draft)
	if err != nil {
		metrics.IncValidationRejected(validationKind(err))
		s.logger.WithError(err).WithField("user_id", shift.UserID).Warn("Shift rejected by validation")
		return shift, err
	}
	return shift, nil
}

func validationKind(err error) string {
	switch {
	case errors.Is(err, planning.ErrInvalidRange):
		return "range"
	case errors.Is(err, planning.ErrInvalidTimeRange):
		return "time_range"
	case errors.Is(err, planning.ErrInvalidQuantity):
		return "quantity"
	case errors.Is(err, planning.ErrInvalidShiftType):
		return "shift_type"
	case errors.Is(err, planning.ErrInvalidTemplate):
		return "template"
	}
	return "other"
}

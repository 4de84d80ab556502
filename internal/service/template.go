package service

import (
	"context"

	"planning-bot/internal/metrics"
	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type TemplateService struct {
	repo   repository.ShiftTemplateRepository
	logger *logrus.Logger
}

func NewTemplateService(repo repository.ShiftTemplateRepository) *TemplateService {
	return &TemplateService{repo: repo, logger: newLogger()}
}

func (s *TemplateService) List(ctx context.Context, establishmentID uint) ([]models.ShiftTemplate, error) {
	templates, err := s.repo.List(ctx, establishmentID)
	if err != nil {
		s.logger.WithError(err).WithField("establishment_id", establishmentID).Error("Failed to list templates")
		return nil, err
	}
	return templates, nil
}

// Create проверяет и сохраняет шаблон
func (s *TemplateService) Create(ctx context.Context, template models.ShiftTemplate) (*models.ShiftTemplate, error) {
	tpl, err := planning.ValidateTemplate(template)
	if err != nil {
		metrics.IncValidationRejected("template")
		s.logger.WithError(err).WithField("name", template.Name).Warn("Invalid shift template")
		return nil, err
	}

	if err := s.repo.Create(ctx, &tpl); err != nil {
		s.logger.WithError(err).WithField("name", tpl.Name).Error("Failed to create template")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":               tpl.ID,
		"establishment_id": tpl.EstablishmentID,
	}).Info("Shift template created")
	return &tpl, nil
}

func (s *TemplateService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to delete template")
		return err
	}

	s.logger.WithField("id", id).Info("Shift template deleted")
	return nil
}

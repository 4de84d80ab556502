package service

import (
	"context"
	"fmt"
	"strings"

	"planning-bot/internal/models"
	"planning-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type EstablishmentService struct {
	repo   repository.EstablishmentRepository
	logger *logrus.Logger
}

func NewEstablishmentService(repo repository.EstablishmentRepository) *EstablishmentService {
	return &EstablishmentService{repo: repo, logger: newLogger()}
}

func (s *EstablishmentService) List(ctx context.Context) ([]models.Establishment, error) {
	establishments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list establishments")
		return nil, err
	}
	return establishments, nil
}

// Create создает заведение
func (s *EstablishmentService) Create(ctx context.Context, name, address string) (*models.Establishment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("название заведения не может быть пустым")
	}

	establishment := &models.Establishment{Name: name, Address: strings.TrimSpace(address)}
	if err := s.repo.Create(ctx, establishment); err != nil {
		s.logger.WithError(err).WithField("name", name).Error("Failed to create establishment")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   establishment.ID,
		"name": establishment.Name,
	}).Info("Establishment created")

	return establishment, nil
}

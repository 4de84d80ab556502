package service

import (
	"context"
	"time"

	"planning-bot/internal/metrics"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"
	"planning-bot/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

// PlanningService собирает снимок заведения и строит недельный график
type PlanningService struct {
	backend      *repository.Backend
	weekStartsOn time.Weekday
	logger       *logrus.Logger
}

func NewPlanningService(backend *repository.Backend, weekStartsOn time.Weekday) *PlanningService {
	return &PlanningService{
		backend:      backend,
		weekStartsOn: weekStartsOn,
		logger:       newLogger(),
	}
}

// WeekStart - первый день недели, содержащей date
func (s *PlanningService) WeekStart(date time.Time) time.Time {
	return timeutil.WeekStart(timeutil.Naive(date), s.weekStartsOn)
}

// Refresh загружает новый снимок. Предыдущий снимок не используется
func (s *PlanningService) Refresh(ctx context.Context, establishmentID uint) (planning.Snapshot, error) {
	users, err := s.backend.Users.List(ctx, establishmentID)
	if err != nil {
		s.logger.WithError(err).WithField("establishment_id", establishmentID).Error("Failed to load users")
		return planning.Snapshot{}, err
	}

	shifts, err := s.backend.Shifts.List(ctx, establishmentID)
	if err != nil {
		s.logger.WithError(err).WithField("establishment_id", establishmentID).Error("Failed to load shifts")
		return planning.Snapshot{}, err
	}

	templates, err := s.backend.Templates.List(ctx, establishmentID)
	if err != nil {
		s.logger.WithError(err).WithField("establishment_id", establishmentID).Error("Failed to load templates")
		return planning.Snapshot{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"establishment_id": establishmentID,
		"users":            len(users),
		"shifts":           len(shifts),
		"templates":        len(templates),
	}).Debug("Snapshot refreshed")

	return planning.Snapshot{
		EstablishmentID: establishmentID,
		Users:           users,
		Shifts:          shifts,
		Templates:       templates,
		FetchedAt:       time.Now(),
	}, nil
}

// Week обновляет снимок и строит график недели, содержащей date
func (s *PlanningService) Week(ctx context.Context, establishmentID uint, date time.Time) (planning.WeekGrid, error) {
	snap, err := s.Refresh(ctx, establishmentID)
	if err != nil {
		return planning.WeekGrid{}, err
	}

	grid := planning.BuildWeekGrid(snap, s.WeekStart(date))

	overtime := 0
	for _, row := range grid.Rows {
		if row.Stats.IsOvertime {
			overtime++
		}
	}
	metrics.SetOvertimeEmployees(establishmentID, overtime)

	return grid, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"planning-bot/internal/metrics"
	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AbsenceRequest - отсутствие сотрудника с Start по End включительно
type AbsenceRequest struct {
	UserID   uint
	Type     models.ShiftType
	Quantity decimal.NullDecimal
	Position string
	Start    time.Time
	End      time.Time
}

type BatchStatus string

const (
	BatchComplete BatchStatus = "complete"
	BatchPartial  BatchStatus = "partial"
	BatchFailed   BatchStatus = "failed"
)

// DayOutcome - результат создания одного дня
type DayOutcome struct {
	Draft planning.AbsenceDraft
	Shift *models.Shift
	Err   error
}

func (o DayOutcome) Day() time.Time {
	return o.Draft.Day()
}

// BatchResult - итоги создания по дням. Дни независимы: откат не выполняется
type BatchResult struct {
	Outcomes []DayOutcome
}

func (r BatchResult) Status() BatchStatus {
	failed := len(r.Failed())
	switch {
	case failed == 0:
		return BatchComplete
	case failed == len(r.Outcomes):
		return BatchFailed
	}
	return BatchPartial
}

// Created - успешно созданные смены в порядке дней
func (r BatchResult) Created() []models.Shift {
	var shifts []models.Shift
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Shift != nil {
			shifts = append(shifts, *o.Shift)
		}
	}
	return shifts
}

func (r BatchResult) Failed() []DayOutcome {
	var failed []DayOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err объединяет ошибки неудачных дней, nil если все дни созданы
func (r BatchResult) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", o.Day().Format("2006-01-02"), o.Err))
	}
	return errors.Join(errs...)
}

type AbsenceService struct {
	shifts repository.ShiftRepository
	labels map[models.ShiftType]string
	logger *logrus.Logger
}

func NewAbsenceService(shifts repository.ShiftRepository, labels map[models.ShiftType]string) *AbsenceService {
	return &AbsenceService{
		shifts: shifts,
		labels: labels,
		logger: newLogger(),
	}
}

// Label - подпись отсутствия по умолчанию с учетом настроек
func (s *AbsenceService) Label(t models.ShiftType) string {
	if label, ok := s.labels[t]; ok && label != "" {
		return label
	}
	return planning.DefaultAbsenceLabel(t)
}

// Create разворачивает отсутствие по дням и создает каждый день отдельным запросом.
// Ошибка возвращается только если запрос не прошел проверку; ошибки бэкенда - в BatchResult
func (s *AbsenceService) Create(ctx context.Context, req AbsenceRequest) (BatchResult, error) {
	if req.Position == "" {
		req.Position = s.Label(req.Type)
	}

	drafts, err := planning.ExpandAbsenceRange(req.UserID, req.Type, req.Quantity, req.Position, req.Start, req.End)
	if err != nil {
		metrics.IncValidationRejected(validationKind(err))
		s.logger.WithError(err).WithField("user_id", req.UserID).Warn("Absence rejected by validation")
		return BatchResult{}, err
	}
	if err := s.validateDrafts(req.UserID, drafts); err != nil {
		return BatchResult{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"type":    req.Type,
		"days":    len(drafts),
	}).Info("Creating absence")

	result := s.submit(ctx, drafts)
	s.logResult(req.UserID, result)
	return result, nil
}

// RetryFailed повторно отправляет только неудачные дни.
// Дни проверяются заново, ошибка проверки возвращается до отправки
func (s *AbsenceService) RetryFailed(ctx context.Context, prev BatchResult) (BatchResult, error) {
	failed := prev.Failed()
	drafts := make([]planning.AbsenceDraft, 0, len(failed))
	for _, o := range failed {
		drafts = append(drafts, o.Draft)
	}
	return s.retry(ctx, drafts)
}

// RetryDays повторно отправляет выбранные дни отсутствия. Каждый день проверяется до отправки
func (s *AbsenceService) RetryDays(ctx context.Context, req AbsenceRequest, days []time.Time) (BatchResult, error) {
	if req.Position == "" {
		req.Position = s.Label(req.Type)
	}

	drafts := make([]planning.AbsenceDraft, 0, len(days))
	for _, d := range days {
		drafts = append(drafts, planning.NewAbsenceDraft(req.UserID, req.Type, req.Quantity, req.Position, d))
	}
	return s.retry(ctx, drafts)
}

func (s *AbsenceService) retry(ctx context.Context, drafts []planning.AbsenceDraft) (BatchResult, error) {
	if len(drafts) == 0 {
		return BatchResult{}, nil
	}
	if err := s.validateDrafts(drafts[0].UserID, drafts); err != nil {
		return BatchResult{}, err
	}

	result := s.submit(ctx, drafts)
	s.logResult(drafts[0].UserID, result)
	return result, nil
}

// validateDrafts проверяет все дни; первая ошибка блокирует весь пакет
func (s *AbsenceService) validateDrafts(userID uint, drafts []planning.AbsenceDraft) error {
	for _, d := range drafts {
		var err error
		if !d.Type.IsAbsence() {
			err = fmt.Errorf("%w: %q is not an absence type", planning.ErrInvalidShiftType, d.Type)
		} else {
			_, err = planning.ValidateDraft(d)
		}
		if err != nil {
			metrics.IncValidationRejected(validationKind(err))
			s.logger.WithError(err).WithField("user_id", userID).Warn("Absence rejected by validation")
			return err
		}
	}
	return nil
}

// submit отправляет дни параллельно и ждет завершения всех запросов.
// Запросы не отменяются вместе с ctx
func (s *AbsenceService) submit(ctx context.Context, drafts []planning.AbsenceDraft) BatchResult {
	outcomes := make([]DayOutcome, len(drafts))
	if len(drafts) == 1 {
		outcomes[0] = s.createDay(context.WithoutCancel(ctx), drafts[0])
		return BatchResult{Outcomes: outcomes}
	}

	var wg sync.WaitGroup
	for i, d := range drafts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = s.createDay(context.WithoutCancel(ctx), d)
		}()
	}
	wg.Wait()

	return BatchResult{Outcomes: outcomes}
}

func (s *AbsenceService) createDay(ctx context.Context, draft planning.AbsenceDraft) DayOutcome {
	shift := draft.Shift()
	if err := s.shifts.Create(ctx, &shift); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": draft.UserID,
			"date":    draft.Day().Format("2006-01-02"),
		}).Error("Failed to create absence day")
		return DayOutcome{Draft: draft, Err: err}
	}

	metrics.IncShiftCreated(string(shift.Type))
	return DayOutcome{Draft: draft, Shift: &shift}
}

func (s *AbsenceService) logResult(userID uint, result BatchResult) {
	status := result.Status()
	metrics.IncAbsenceBatch(string(status))

	entry := s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"status":  status,
		"created": len(result.Created()),
		"failed":  len(result.Failed()),
	})
	if status == BatchComplete {
		entry.Info("Absence created")
		return
	}
	entry.Warn("Absence created with failures")
}

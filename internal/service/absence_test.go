package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func startsOn(d int) any {
	return mock.MatchedBy(func(s *models.Shift) bool {
		return s.PlannedStart.Day() == d
	})
}

func sickRequest(from, to int) AbsenceRequest {
	return AbsenceRequest{
		UserID:   7,
		Type:     models.ShiftSick,
		Quantity: decimal.NewNullDecimal(decimal.NewFromInt(1)),
		Start:    day(from),
		End:      day(to),
	}
}

func TestAbsenceCreateComplete(t *testing.T) {
	repo := new(mockShiftRepo)
	var nextID atomic.Uint32
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Shift")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Shift).ID = uint(nextID.Add(1))
		}).
		Return(nil).Times(3)

	svc := NewAbsenceService(repo, nil)
	result, err := svc.Create(context.Background(), sickRequest(4, 6))
	require.NoError(t, err)

	assert.Equal(t, BatchComplete, result.Status())
	assert.NoError(t, result.Err())
	require.Len(t, result.Outcomes, 3)

	created := result.Created()
	require.Len(t, created, 3)
	for i, s := range created {
		assert.Equal(t, day(4+i), s.PlannedStart.Time.Truncate(24*time.Hour))
		assert.Equal(t, "Maladie", s.Position)
		assert.NotZero(t, s.ID)
	}
	repo.AssertExpectations(t)
}

func TestAbsenceCreatePartial(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Create", mock.Anything, startsOn(5)).Return(repository.Rejected(403, "forbidden")).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Times(4)

	svc := NewAbsenceService(repo, nil)
	result, err := svc.Create(context.Background(), sickRequest(4, 8))
	require.NoError(t, err)

	assert.Equal(t, BatchPartial, result.Status())
	assert.Len(t, result.Created(), 4)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, day(5), failed[0].Day())
	assert.ErrorIs(t, result.Err(), repository.ErrBackendRejected)
	assert.Contains(t, result.Err().Error(), "2024-03-05")

	retryRepo := new(mockShiftRepo)
	retryRepo.On("Create", mock.Anything, startsOn(5)).Return(nil).Once()
	retry, err := NewAbsenceService(retryRepo, nil).RetryFailed(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, BatchComplete, retry.Status())
	assert.Len(t, retry.Outcomes, 1)
	retryRepo.AssertExpectations(t)
}

func TestAbsenceCreateFailed(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrBackendUnavailable).Times(2)

	result, err := NewAbsenceService(repo, nil).Create(context.Background(), sickRequest(4, 5))
	require.NoError(t, err)
	assert.Equal(t, BatchFailed, result.Status())
	assert.Empty(t, result.Created())
	assert.ErrorIs(t, result.Err(), repository.ErrBackendUnavailable)
}

func TestAbsenceValidationBlocksSubmission(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewAbsenceService(repo, nil)

	_, err := svc.Create(context.Background(), sickRequest(6, 4))
	assert.ErrorIs(t, err, planning.ErrInvalidRange)

	req := sickRequest(4, 5)
	req.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(-1))
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, planning.ErrInvalidQuantity)

	req = sickRequest(4, 5)
	req.Type = models.ShiftWork
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, planning.ErrInvalidShiftType)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAbsenceRetryDays(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Shift) bool {
		return s.PlannedStart.String() == "2024-03-06T09:00:00" && s.Position == "Maladie"
	})).Return(nil).Once()

	result, err := NewAbsenceService(repo, nil).RetryDays(context.Background(), sickRequest(4, 8), []time.Time{day(6)})
	require.NoError(t, err)
	assert.Equal(t, BatchComplete, result.Status())
	repo.AssertExpectations(t)
}

func TestAbsenceRetryValidatesBeforeSubmission(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewAbsenceService(repo, nil)

	req := AbsenceRequest{UserID: 7, Type: "holiday"}
	result, err := svc.RetryDays(context.Background(), req, []time.Time{day(4)})
	assert.ErrorIs(t, err, planning.ErrInvalidShiftType)
	assert.Empty(t, result.Outcomes)

	req = sickRequest(4, 5)
	req.Type = models.ShiftWork
	_, err = svc.RetryDays(context.Background(), req, []time.Time{day(4)})
	assert.ErrorIs(t, err, planning.ErrInvalidShiftType)

	req = sickRequest(4, 5)
	req.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(-2))
	_, err = svc.RetryDays(context.Background(), req, []time.Time{day(4)})
	assert.ErrorIs(t, err, planning.ErrInvalidQuantity)

	prev := BatchResult{Outcomes: []DayOutcome{{
		Draft: planning.NewAbsenceDraft(7, "holiday", decimal.NullDecimal{}, "", day(4)),
		Err:   repository.ErrBackendUnavailable,
	}}}
	_, err = svc.RetryFailed(context.Background(), prev)
	assert.ErrorIs(t, err, planning.ErrInvalidShiftType)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAbsenceIgnoresCallerCancellation(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Create", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewAbsenceService(repo, nil).Create(ctx, sickRequest(4, 5))
	require.NoError(t, err)
	assert.Equal(t, BatchComplete, result.Status())
	repo.AssertExpectations(t)
}

func TestAbsenceLabels(t *testing.T) {
	svc := NewAbsenceService(nil, map[models.ShiftType]string{models.ShiftVacation: "Отпуск"})
	assert.Equal(t, "Отпуск", svc.Label(models.ShiftVacation))
	assert.Equal(t, "RTT", svc.Label(models.ShiftRTT))
}

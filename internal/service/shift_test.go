package service

import (
	"context"
	"testing"
	"time"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShiftCreateValidatesFirst(t *testing.T) {
	repo := new(mockShiftRepo)
	svc := NewShiftService(repo)

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), planning.WorkDraft{UserID: 1, Start: start, End: start})
	assert.ErrorIs(t, err, planning.ErrInvalidTimeRange)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShiftCreateSurfacesBackendError(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.Rejected(404, "Utilisateur introuvable")).Once()

	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	_, err := NewShiftService(repo).Create(context.Background(), planning.WorkDraft{UserID: 1, Start: start, End: start.Add(time.Hour)})
	assert.ErrorIs(t, err, repository.ErrBackendRejected)
	assert.False(t, planning.IsValidationError(err))
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestShiftApplyTemplate(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Shift) bool {
		return s.UserID == 5 && s.Type == models.ShiftWork &&
			s.PlannedStart.String() == "2024-03-10T09:00:00" &&
			s.PlannedEnd.String() == "2024-03-10T17:30:00"
	})).Return(nil).Once()

	tpl := models.ShiftTemplate{ID: 1, Name: "Matin", StartTime: "09:00", EndTime: "17:30", Position: "Salle", ApplicableDays: []int{0, 1, 2, 3, 4}}

	shift, applicable, err := NewShiftService(repo).ApplyTemplate(context.Background(), tpl, 5, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, applicable)
	assert.Equal(t, "Salle", shift.Position)
	repo.AssertExpectations(t)
}

func TestShiftReplaceAndDelete(t *testing.T) {
	repo := new(mockShiftRepo)
	repo.On("Update", mock.Anything, uint(9), mock.MatchedBy(func(s *models.Shift) bool {
		return !s.Quantity.Valid && s.Position == "Bar"
	})).Return(nil).Once()
	repo.On("Delete", mock.Anything, uint(9)).Return(nil).Once()

	svc := NewShiftService(repo)
	start := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)
	_, err := svc.Replace(context.Background(), 9, planning.WorkDraft{UserID: 1, Start: start, End: start.Add(4 * time.Hour), Position: "Bar"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), 9))
	repo.AssertExpectations(t)
}

func TestValidationKind(t *testing.T) {
	assert.Equal(t, "quantity", validationKind(planning.ErrInvalidQuantity))
	assert.Equal(t, "range", validationKind(planning.ErrInvalidRange))
	assert.Equal(t, "other", validationKind(repository.ErrBackendUnavailable))
}

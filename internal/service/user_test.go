package service

import (
	"context"
	"testing"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserInvite(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Invite", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleEmployee
	})).Return(nil).Once()

	svc := NewUserService(repo)
	require.NoError(t, svc.Invite(context.Background(), &models.User{Email: "anna@example.com", FullName: "Anna", EstablishmentID: 1}))

	err := svc.Invite(context.Background(), &models.User{Email: "nope", FullName: "Anna"})
	assert.ErrorIs(t, err, planning.ErrInvalidUser)
	repo.AssertNumberOfCalls(t, "Invite", 1)
}

func TestUserSetHourlyRate(t *testing.T) {
	repo := new(mockUserRepo)
	rate := decimal.RequireFromString("13.5")
	repo.On("Update", mock.Anything, uint(3), models.UserUpdate{HourlyRate: &rate}).
		Return(&models.User{ID: 3, HourlyRate: decimal.NewNullDecimal(rate)}, nil).Once()

	svc := NewUserService(repo)
	user, err := svc.SetHourlyRate(context.Background(), 3, rate)
	require.NoError(t, err)
	assert.Equal(t, "13.5", user.Rate().String())

	_, err = svc.SetHourlyRate(context.Background(), 3, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, planning.ErrInvalidUser)
	repo.AssertExpectations(t)
}

func TestTemplateCreateValidates(t *testing.T) {
	repo := new(mockTemplateRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(t *models.ShiftTemplate) bool {
		return t.BreakType == models.BreakFlexible && len(t.ApplicableDays) == 7
	})).Return(nil).Once()

	svc := NewTemplateService(repo)
	tpl, err := svc.Create(context.Background(), models.ShiftTemplate{
		EstablishmentID: 1, Name: "Soir", StartTime: "18:00", EndTime: "23:00", Position: "Bar",
	})
	require.NoError(t, err)
	assert.Equal(t, "Soir", tpl.Name)

	_, err = svc.Create(context.Background(), models.ShiftTemplate{Name: "Nuit", StartTime: "22:00", EndTime: "06:00", Position: "Bar"})
	assert.ErrorIs(t, err, planning.ErrInvalidTemplate)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

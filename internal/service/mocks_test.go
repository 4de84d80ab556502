package service

import (
	"context"

	"planning-bot/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockShiftRepo struct {
	mock.Mock
}

func (m *mockShiftRepo) List(ctx context.Context, establishmentID uint) ([]models.Shift, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shift), args.Error(1)
}

func (m *mockShiftRepo) Create(ctx context.Context, shift *models.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *mockShiftRepo) Update(ctx context.Context, id uint, shift *models.Shift) error {
	args := m.Called(ctx, id, shift)
	return args.Error(0)
}

func (m *mockShiftRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) List(ctx context.Context, establishmentID uint) ([]models.User, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Invite(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockTemplateRepo struct {
	mock.Mock
}

func (m *mockTemplateRepo) List(ctx context.Context, establishmentID uint) ([]models.ShiftTemplate, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShiftTemplate), args.Error(1)
}

func (m *mockTemplateRepo) Create(ctx context.Context, template *models.ShiftTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

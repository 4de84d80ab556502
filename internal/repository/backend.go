package repository

import (
	"context"

	"planning-bot/internal/models"
)

// Контракт бэкенда. Реализации: REST-клиент (planningapi) и локальная БД (Gorm*)

type EstablishmentRepository interface {
	List(ctx context.Context) ([]models.Establishment, error)
	Create(ctx context.Context, establishment *models.Establishment) error
}

type UserRepository interface {
	// List - сотрудники заведения, 0 означает всех
	List(ctx context.Context, establishmentID uint) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error)
	Invite(ctx context.Context, user *models.User) error
}

type ShiftTemplateRepository interface {
	List(ctx context.Context, establishmentID uint) ([]models.ShiftTemplate, error)
	Create(ctx context.Context, template *models.ShiftTemplate) error
	Delete(ctx context.Context, id uint) error
}

type ShiftRepository interface {
	List(ctx context.Context, establishmentID uint) ([]models.Shift, error)
	Create(ctx context.Context, shift *models.Shift) error
	// Update - полная замена смены
	Update(ctx context.Context, id uint, shift *models.Shift) error
	Delete(ctx context.Context, id uint) error
}

// Backend - набор репозиториев одного бэкенда
type Backend struct {
	Establishments EstablishmentRepository
	Users          UserRepository
	Templates      ShiftTemplateRepository
	Shifts         ShiftRepository
}

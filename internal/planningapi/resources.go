package planningapi

import (
	"context"
	"net/http"

	"planning-bot/internal/models"
)

type EstablishmentAPI struct {
	c *Client
}

func (a *EstablishmentAPI) List(ctx context.Context) ([]models.Establishment, error) {
	var out []models.Establishment
	if err := a.c.get(ctx, "establishments", "/establishments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *EstablishmentAPI) Create(ctx context.Context, establishment *models.Establishment) error {
	return a.c.write(ctx, http.MethodPost, "establishments", "/establishments", establishment, establishment)
}

type UserAPI struct {
	c *Client
}

func (a *UserAPI) List(ctx context.Context, establishmentID uint) ([]models.User, error) {
	var out []models.User
	if err := a.c.get(ctx, "users", "/users", establishmentQuery(establishmentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *UserAPI) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var out models.User
	if err := a.c.get(ctx, "users", idPath("/users", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UserAPI) Update(ctx context.Context, id uint, upd models.UserUpdate) (*models.User, error) {
	var out models.User
	if err := a.c.write(ctx, http.MethodPut, "users", idPath("/users", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UserAPI) Invite(ctx context.Context, user *models.User) error {
	return a.c.write(ctx, http.MethodPost, "users", "/users", user, user)
}

type TemplateAPI struct {
	c *Client
}

func (a *TemplateAPI) List(ctx context.Context, establishmentID uint) ([]models.ShiftTemplate, error) {
	var out []models.ShiftTemplate
	if err := a.c.get(ctx, "shift-templates", "/shift-templates", establishmentQuery(establishmentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *TemplateAPI) Create(ctx context.Context, template *models.ShiftTemplate) error {
	return a.c.write(ctx, http.MethodPost, "shift-templates", "/shift-templates", template, template)
}

func (a *TemplateAPI) Delete(ctx context.Context, id uint) error {
	return a.c.write(ctx, http.MethodDelete, "shift-templates", idPath("/shift-templates", id), nil, nil)
}

type ShiftAPI struct {
	c *Client
}

func (a *ShiftAPI) List(ctx context.Context, establishmentID uint) ([]models.Shift, error) {
	var out []models.Shift
	if err := a.c.get(ctx, "shifts", "/shifts", establishmentQuery(establishmentID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ShiftAPI) Create(ctx context.Context, shift *models.Shift) error {
	return a.c.write(ctx, http.MethodPost, "shifts", "/shifts", shift, shift)
}

func (a *ShiftAPI) Update(ctx context.Context, id uint, shift *models.Shift) error {
	return a.c.write(ctx, http.MethodPut, "shifts", idPath("/shifts", id), shift, shift)
}

func (a *ShiftAPI) Delete(ctx context.Context, id uint) error {
	return a.c.write(ctx, http.MethodDelete, "shifts", idPath("/shifts", id), nil, nil)
}

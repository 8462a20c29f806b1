package handlers

import (
	"context"
	"errors"
	"net/http"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
	"crudexample/internal/http/filters"
	"crudexample/internal/pipeline"
	"crudexample/internal/services"
)

type AccountsService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (models.User, error)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
}

// Account signs users in and out. The auth marker cookie itself is written
// by the AuthToken result stage from the request items set here.
type Account struct {
	Service AccountsService
}

func signIn(c *pipeline.Context, u models.User) {
	c.Items.Set(filters.ItemSubject, u.ID.String())
	c.Items.Set(filters.ItemRole, u.Role)
}

// POST /api/account/register
func (h Account) Register(c *pipeline.Context) (*pipeline.Response, error) {
	u, err := h.Service.Register(c.Context(), payload[models.RegisterRequest](c))
	if err != nil {
		return nil, err
	}
	signIn(c, u)
	return pipeline.JSON(http.StatusCreated, u.ToPublic()), nil
}

// POST /api/account/login
func (h Account) Login(c *pipeline.Context) (*pipeline.Response, error) {
	u, err := h.Service.Login(c.Context(), payload[models.LoginRequest](c))
	if errors.Is(err, services.ErrInvalidCredentials) {
		return pipeline.JSON(http.StatusUnauthorized, map[string]any{"error": err.Error()}), nil
	}
	if err != nil {
		return nil, err
	}
	signIn(c, u)
	return pipeline.JSON(http.StatusOK, u.ToPublic()), nil
}

// POST /api/account/logout
func (h Account) Logout(c *pipeline.Context) (*pipeline.Response, error) {
	c.Items.Delete(filters.ItemSubject)
	c.Items.Set(filters.ItemSignOut, true)
	return pipeline.StatusCode(http.StatusNoContent), nil
}

// GET /api/account/email-available?email=
func (h Account) EmailAvailable(c *pipeline.Context) (*pipeline.Response, error) {
	email := c.Args.String(ArgEmail)
	if email == "" {
		return nil, domain.ValidationError{Field: ArgEmail, Msg: "can't be blank"}
	}
	available, err := h.Service.IsEmailAvailable(c.Context(), email)
	if err != nil {
		return nil, err
	}
	return pipeline.JSON(http.StatusOK, available), nil
}

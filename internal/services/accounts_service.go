package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UsersStore interface {
	Add(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AccountsService struct {
	Users  UsersStore
	Logger *slog.Logger
	// Cost defaults to bcrypt.DefaultCost.
	Cost int
}

func (s AccountsService) Register(ctx context.Context, req *models.RegisterRequest) (models.User, error) {
	if req == nil {
		return models.User{}, domain.ValidationError{Field: "registerRequest", Msg: "request is required"}
	}
	if err := ValidateModel(req); err != nil {
		return models.User{}, err
	}
	available, err := s.IsEmailAvailable(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if !available {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "hash password", Err: err}
	}

	role := string(domain.RoleUser)
	if req.UserType == string(domain.RoleAdmin) {
		role = string(domain.RoleAdmin)
	}
	u := models.User{
		ID:           uuid.New(),
		PersonName:   strings.TrimSpace(req.PersonName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         role,
	}
	if _, err := s.Users.Add(ctx, u); err != nil {
		return models.User{}, err
	}
	logger(s.Logger).Info("user registered", slog.String("user_id", u.ID.String()), slog.String("role", role))
	return u, nil
}

func (s AccountsService) Login(ctx context.Context, req *models.LoginRequest) (models.User, error) {
	if req == nil {
		return models.User{}, domain.ValidationError{Field: "loginRequest", Msg: "request is required"}
	}
	if err := ValidateModel(req); err != nil {
		return models.User{}, err
	}
	u, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return *u, nil
}

func (s AccountsService) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u == nil, nil
}

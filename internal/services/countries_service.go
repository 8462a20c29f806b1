package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
)

type CountriesStore interface {
	AddCountry(ctx context.Context, c models.Country) (models.Country, error)
	GetAllCountries(ctx context.Context) ([]models.Country, error)
	GetCountryByCountryID(ctx context.Context, id uuid.UUID) (*models.Country, error)
	GetCountryByCountryName(ctx context.Context, name string) (*models.Country, error)
}

type CountriesService struct {
	Repo   CountriesStore
	Logger *slog.Logger
}

// AddCountry rejects a nil request, a blank name and a name already stored.
func (s CountriesService) AddCountry(ctx context.Context, req *models.CountryAddRequest) (models.CountryResponse, error) {
	if req == nil {
		return models.CountryResponse{}, domain.ValidationError{Field: "countryAddRequest", Msg: "request is required"}
	}
	c := req.ToCountry()
	if c.Name == "" {
		return models.CountryResponse{}, domain.ValidationError{Field: "countryName", Msg: "can't be blank"}
	}
	existing, err := s.Repo.GetCountryByCountryName(ctx, c.Name)
	if err != nil {
		return models.CountryResponse{}, err
	}
	if existing != nil {
		return models.CountryResponse{}, domain.ConflictError{Resource: "country", Msg: "given country name already exists"}
	}

	c.ID = uuid.New()
	c, err = s.Repo.AddCountry(ctx, c)
	if err != nil {
		return models.CountryResponse{}, err
	}
	logger(s.Logger).Info("country added", slog.String("country_id", c.ID.String()))
	return c.ToCountryResponse(), nil
}

func (s CountriesService) GetAllCountries(ctx context.Context) ([]models.CountryResponse, error) {
	countries, err := s.Repo.GetAllCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.CountryResponse, 0, len(countries))
	for _, c := range countries {
		out = append(out, c.ToCountryResponse())
	}
	return out, nil
}

// GetCountryByCountryID returns nil for a nil id or an unknown country.
func (s CountriesService) GetCountryByCountryID(ctx context.Context, id *uuid.UUID) (*models.CountryResponse, error) {
	if id == nil {
		return nil, nil
	}
	c, err := s.Repo.GetCountryByCountryID(ctx, *id)
	if err != nil || c == nil {
		return nil, err
	}
	res := c.ToCountryResponse()
	return &res, nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
	"crudexample/internal/pipeline"
)

type CountriesService interface {
	AddCountry(ctx context.Context, req *models.CountryAddRequest) (models.CountryResponse, error)
	GetAllCountries(ctx context.Context) ([]models.CountryResponse, error)
	GetCountryByCountryID(ctx context.Context, id *uuid.UUID) (*models.CountryResponse, error)
}

type Countries struct {
	Service CountriesService
}

// GET /api/countries
func (h Countries) List(c *pipeline.Context) (*pipeline.Response, error) {
	countries, err := h.Service.GetAllCountries(c.Context())
	if err != nil {
		return nil, err
	}
	return pipeline.JSON(http.StatusOK, countries), nil
}

// GET /api/countries/:id
func (h Countries) Show(c *pipeline.Context) (*pipeline.Response, error) {
	country, err := h.Service.GetCountryByCountryID(c.Context(), idArg(c))
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, domain.NotFoundError{Resource: "country"}
	}
	return pipeline.JSON(http.StatusOK, country), nil
}

// POST /api/countries
func (h Countries) Create(c *pipeline.Context) (*pipeline.Response, error) {
	res, err := h.Service.AddCountry(c.Context(), payload[models.CountryAddRequest](c))
	if err != nil {
		return nil, err
	}
	c.SetHeader("Location", "/api/countries/"+res.CountryID.String())
	return pipeline.JSON(http.StatusCreated, res), nil
}

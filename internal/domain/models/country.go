package models

import (
	"strings"

	"github.com/google/uuid"
)

type Country struct {
	ID   uuid.UUID `yaml:"id"`
	Name string    `yaml:"name"`
}

type CountryAddRequest struct {
	CountryName string `json:"countryName"`
}

func (r CountryAddRequest) ToCountry() Country {
	return Country{Name: strings.TrimSpace(r.CountryName)}
}

type CountryResponse struct {
	CountryID   uuid.UUID `json:"countryId"`
	CountryName string    `json:"countryName"`
}

func (c Country) ToCountryResponse() CountryResponse {
	return CountryResponse{CountryID: c.ID, CountryName: c.Name}
}

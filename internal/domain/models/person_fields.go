package models

import (
	"time"

	"github.com/google/uuid"

	"crudexample/internal/query"
)

// Field tokens accepted for person search and sort.
const (
	FieldPersonName  = "PersonName"
	FieldEmail       = "Email"
	FieldDateOfBirth = "DateOfBirth"
	FieldGender      = "Gender"
	FieldCountryID   = "CountryID"
	FieldAddress     = "Address"
)

// PersonFields is the closed field set for PersonResponse.
var PersonFields = query.NewRegistry[PersonResponse](FieldPersonName).
	Register(FieldPersonName, query.TextField(func(p PersonResponse) string { return p.PersonName })).
	Register(FieldEmail, query.TextField(func(p PersonResponse) string { return p.Email })).
	Register(FieldDateOfBirth, query.DateField(func(p PersonResponse) *time.Time { return p.DateOfBirth })).
	Register(FieldGender, query.EnumField(
		func(p PersonResponse) string { return string(p.Gender) },
		func(p PersonResponse) int { return p.Gender.Ordinal() },
	)).
	Register(FieldCountryID, query.IdentifierField(func(p PersonResponse) string {
		if p.CountryID == uuid.Nil {
			return ""
		}
		return p.CountryID.String()
	})).
	Register(FieldAddress, query.TextField(func(p PersonResponse) string { return p.Address }))

// PersonFieldLabels are the display names offered by the search form.
var PersonFieldLabels = map[string]string{
	FieldPersonName:  "Person Name",
	FieldEmail:       "Email",
	FieldDateOfBirth: "Date of Birth",
	FieldGender:      "Gender",
	FieldCountryID:   "Country",
	FieldAddress:     "Address",
}

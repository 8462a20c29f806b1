package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// Gender is a closed enumeration; declaration order is the sort ordinal.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

var genderOrder = []Gender{GenderMale, GenderFemale, GenderOther}

// Ordinal returns the enum position, or len(genders) for unset/unknown values
// so they sort last.
func (g Gender) Ordinal() int {
	for i, v := range genderOrder {
		if v == g {
			return i
		}
	}
	return len(genderOrder)
}

// ParseGender matches case-insensitively.
func ParseGender(s string) (Gender, bool) {
	for _, g := range genderOrder {
		if strings.EqualFold(string(g), strings.TrimSpace(s)) {
			return g, true
		}
	}
	return "", false
}

// Person is the stored entity.
type Person struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	DateOfBirth        time.Time
	Gender             Gender
	CountryID          uuid.UUID
	Address            string
	ReceiveNewsLetters bool

	// CountryName is filled by joined reads only.
	CountryName string
}

// PersonAddRequest is the payload for creating a person.
type PersonAddRequest struct {
	PersonName         string `json:"personName" validate:"required,max=40"`
	Email              string `json:"email" validate:"required,email,max=40"`
	DateOfBirth        string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender             string `json:"gender" validate:"omitempty,gender"`
	CountryID          string `json:"countryId" validate:"omitempty,uuid"`
	Address            string `json:"address" validate:"max=200"`
	ReceiveNewsLetters bool   `json:"receiveNewsLetters"`
}

func (r PersonAddRequest) ToPerson() Person {
	return Person{
		Name:               strings.TrimSpace(r.PersonName),
		Email:              strings.TrimSpace(r.Email),
		DateOfBirth:        parseDate(r.DateOfBirth),
		Gender:             parseGender(r.Gender),
		CountryID:          parseID(r.CountryID),
		Address:            strings.TrimSpace(r.Address),
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
}

// PersonUpdateRequest is the payload for editing a person.
type PersonUpdateRequest struct {
	PersonID           string `json:"personId" validate:"required,uuid"`
	PersonName         string `json:"personName" validate:"required,max=40"`
	Email              string `json:"email" validate:"required,email,max=40"`
	DateOfBirth        string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender             string `json:"gender" validate:"omitempty,gender"`
	CountryID          string `json:"countryId" validate:"omitempty,uuid"`
	Address            string `json:"address" validate:"max=200"`
	ReceiveNewsLetters bool   `json:"receiveNewsLetters"`
}

func (r PersonUpdateRequest) ToPerson() Person {
	return Person{
		ID:                 parseID(r.PersonID),
		Name:               strings.TrimSpace(r.PersonName),
		Email:              strings.TrimSpace(r.Email),
		DateOfBirth:        parseDate(r.DateOfBirth),
		Gender:             parseGender(r.Gender),
		CountryID:          parseID(r.CountryID),
		Address:            strings.TrimSpace(r.Address),
		ReceiveNewsLetters: r.ReceiveNewsLetters,
	}
}

// PersonResponse is the presentation record the query engine works on.
type PersonResponse struct {
	PersonID           uuid.UUID  `json:"personId"`
	PersonName         string     `json:"personName"`
	Email              string     `json:"email"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty"`
	Gender             Gender     `json:"gender"`
	CountryID          uuid.UUID  `json:"countryId"`
	Country            string     `json:"country"`
	Address            string     `json:"address"`
	ReceiveNewsLetters bool       `json:"receiveNewsLetters"`
	Age                *int       `json:"age,omitempty"`
}

func (p Person) ToPersonResponse() PersonResponse {
	out := PersonResponse{
		PersonID:           p.ID,
		PersonName:         p.Name,
		Email:              p.Email,
		Gender:             p.Gender,
		CountryID:          p.CountryID,
		Country:            p.CountryName,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
	}
	if !p.DateOfBirth.IsZero() {
		dob := p.DateOfBirth
		age := ageAt(dob, time.Now())
		out.DateOfBirth = &dob
		out.Age = &age
	}
	return out
}

// ToPersonUpdateRequest prefills an edit form.
func (p PersonResponse) ToPersonUpdateRequest() PersonUpdateRequest {
	out := PersonUpdateRequest{
		PersonID:           p.PersonID.String(),
		PersonName:         p.PersonName,
		Email:              p.Email,
		Gender:             string(p.Gender),
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
	}
	if p.DateOfBirth != nil {
		out.DateOfBirth = p.DateOfBirth.Format(DateLayout)
	}
	if p.CountryID != uuid.Nil {
		out.CountryID = p.CountryID.String()
	}
	return out
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// parseGender keeps unknown values verbatim so validation can still reject them.
func parseGender(s string) Gender {
	if g, ok := ParseGender(s); ok {
		return g
	}
	return Gender(strings.TrimSpace(s))
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}

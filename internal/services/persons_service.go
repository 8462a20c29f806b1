package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
	"crudexample/internal/query"
)

type PersonsStore interface {
	AddPerson(ctx context.Context, p models.Person) (models.Person, error)
	GetAllPersons(ctx context.Context) ([]models.Person, error)
	GetPersonByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	UpdatePerson(ctx context.Context, p models.Person) (models.Person, error)
	DeletePerson(ctx context.Context, id uuid.UUID) (bool, error)
}

type PersonsAdder interface {
	AddPerson(ctx context.Context, req *models.PersonAddRequest) (models.PersonResponse, error)
}

type PersonsGetter interface {
	GetAllPersons(ctx context.Context) ([]models.PersonResponse, error)
	GetPersonByPersonID(ctx context.Context, id *uuid.UUID) (*models.PersonResponse, error)
	GetFilteredPersons(ctx context.Context, searchBy, searchString string) ([]models.PersonResponse, error)
}

type PersonsSorter interface {
	GetSortedPersons(persons []models.PersonResponse, sortBy string, dir domain.SortDirection) []models.PersonResponse
}

type PersonsUpdater interface {
	UpdatePerson(ctx context.Context, req *models.PersonUpdateRequest) (models.PersonResponse, error)
}

type PersonsDeleter interface {
	DeletePerson(ctx context.Context, id *uuid.UUID) (bool, error)
}

// PersonsService implements every persons use case over one store.
type PersonsService struct {
	Repo   PersonsStore
	Logger *slog.Logger
}

var (
	_ PersonsAdder   = PersonsService{}
	_ PersonsGetter  = PersonsService{}
	_ PersonsSorter  = PersonsService{}
	_ PersonsUpdater = PersonsService{}
	_ PersonsDeleter = PersonsService{}
)

func (s PersonsService) AddPerson(ctx context.Context, req *models.PersonAddRequest) (models.PersonResponse, error) {
	if req == nil {
		return models.PersonResponse{}, domain.ValidationError{Field: "personAddRequest", Msg: "request is required"}
	}
	if err := ValidateModel(req); err != nil {
		return models.PersonResponse{}, err
	}
	p := req.ToPerson()
	p.ID = uuid.New()
	if _, err := s.Repo.AddPerson(ctx, p); err != nil {
		return models.PersonResponse{}, err
	}
	logger(s.Logger).Info("person added", slog.String("person_id", p.ID.String()))
	return s.reload(ctx, p)
}

func (s PersonsService) GetAllPersons(ctx context.Context) ([]models.PersonResponse, error) {
	persons, err := s.Repo.GetAllPersons(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PersonResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, p.ToPersonResponse())
	}
	return out, nil
}

// GetPersonByPersonID returns nil for a nil id or an unknown person.
func (s PersonsService) GetPersonByPersonID(ctx context.Context, id *uuid.UUID) (*models.PersonResponse, error) {
	if id == nil {
		return nil, nil
	}
	p, err := s.Repo.GetPersonByID(ctx, *id)
	if err != nil || p == nil {
		return nil, err
	}
	res := p.ToPersonResponse()
	return &res, nil
}

// GetFilteredPersons returns all persons when the field is unknown or the
// search string is empty.
func (s PersonsService) GetFilteredPersons(ctx context.Context, searchBy, searchString string) ([]models.PersonResponse, error) {
	all, err := s.GetAllPersons(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, models.PersonFields, searchBy, searchString), nil
}

func (s PersonsService) GetSortedPersons(persons []models.PersonResponse, sortBy string, dir domain.SortDirection) []models.PersonResponse {
	return query.Sort(persons, models.PersonFields, sortBy, dir)
}

func (s PersonsService) UpdatePerson(ctx context.Context, req *models.PersonUpdateRequest) (models.PersonResponse, error) {
	if req == nil {
		return models.PersonResponse{}, domain.ValidationError{Field: "personUpdateRequest", Msg: "request is required"}
	}
	if err := ValidateModel(req); err != nil {
		return models.PersonResponse{}, err
	}
	p := req.ToPerson()
	existing, err := s.Repo.GetPersonByID(ctx, p.ID)
	if err != nil {
		return models.PersonResponse{}, err
	}
	if existing == nil {
		return models.PersonResponse{}, domain.NotFoundError{Resource: "person"}
	}
	if _, err := s.Repo.UpdatePerson(ctx, p); err != nil {
		return models.PersonResponse{}, err
	}
	logger(s.Logger).Info("person updated", slog.String("person_id", p.ID.String()))
	return s.reload(ctx, p)
}

func (s PersonsService) DeletePerson(ctx context.Context, id *uuid.UUID) (bool, error) {
	if id == nil {
		return false, domain.ValidationError{Field: "personId", Msg: "can't be blank"}
	}
	deleted, err := s.Repo.DeletePerson(ctx, *id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger(s.Logger).Info("person deleted", slog.String("person_id", id.String()))
	}
	return deleted, nil
}

// reload reads p back so the response carries the joined country name.
func (s PersonsService) reload(ctx context.Context, p models.Person) (models.PersonResponse, error) {
	stored, err := s.Repo.GetPersonByID(ctx, p.ID)
	if err != nil {
		return models.PersonResponse{}, err
	}
	if stored == nil {
		return p.ToPersonResponse(), nil
	}
	return stored.ToPersonResponse(), nil
}

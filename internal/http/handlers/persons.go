package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
	"crudexample/internal/http/filters"
	"crudexample/internal/pipeline"
	"crudexample/internal/services"
)

type CountriesLister interface {
	GetAllCountries(ctx context.Context) ([]models.CountryResponse, error)
}

type PersonsExporter interface {
	PersonsPDF(persons []models.PersonResponse) ([]byte, string, error)
}

type Persons struct {
	Adder     services.PersonsAdder
	Getter    services.PersonsGetter
	Sorter    services.PersonsSorter
	Updater   services.PersonsUpdater
	Deleter   services.PersonsDeleter
	Countries CountriesLister
	Exporter  PersonsExporter
}

// BindList binds the search and sort arguments with their defaults.
func BindList(gc *gin.Context, args pipeline.Args) error {
	if err := BindQuery(filters.ArgSearchBy, filters.ArgSearchString, filters.ArgSortBy, filters.ArgSortOrder)(gc, args); err != nil {
		return err
	}
	if !args.Has(filters.ArgSortBy) {
		args[filters.ArgSortBy] = models.PersonFields.Default()
	}
	if !args.Has(filters.ArgSortOrder) {
		args[filters.ArgSortOrder] = domain.Ascending.String()
	}
	return nil
}

func (h Persons) list(c *pipeline.Context) ([]models.PersonResponse, error) {
	persons, err := h.Getter.GetFilteredPersons(c.Context(), c.Args.String(filters.ArgSearchBy), c.Args.String(filters.ArgSearchString))
	if err != nil {
		return nil, err
	}
	dir, _ := domain.ParseSortDirection(c.Args.String(filters.ArgSortOrder))
	return h.Sorter.GetSortedPersons(persons, c.Args.String(filters.ArgSortBy), dir), nil
}

// GET /api/persons
func (h Persons) Index(c *pipeline.Context) (*pipeline.Response, error) {
	c.ViewData["SearchFields"] = models.PersonFieldLabels
	persons, err := h.list(c)
	if err != nil {
		return nil, err
	}
	return pipeline.View(persons), nil
}

// GET /api/persons/new
func (h Persons) New(c *pipeline.Context) (*pipeline.Response, error) {
	countries, err := h.Countries.GetAllCountries(c.Context())
	if err != nil {
		return nil, err
	}
	c.ViewData["Countries"] = countries
	return pipeline.View(models.PersonAddRequest{}), nil
}

// POST /api/persons
func (h Persons) Create(c *pipeline.Context) (*pipeline.Response, error) {
	res, err := h.Adder.AddPerson(c.Context(), payload[models.PersonAddRequest](c))
	if err != nil {
		return nil, err
	}
	c.SetHeader("Location", "/api/persons/"+res.PersonID.String())
	return pipeline.JSON(http.StatusCreated, res), nil
}

// GET /api/persons/:id
func (h Persons) Show(c *pipeline.Context) (*pipeline.Response, error) {
	res, err := h.Getter.GetPersonByPersonID(c.Context(), idArg(c))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.NotFoundError{Resource: "person"}
	}
	return pipeline.JSON(http.StatusOK, res), nil
}

// GET /api/persons/:id/edit
func (h Persons) Edit(c *pipeline.Context) (*pipeline.Response, error) {
	res, err := h.Getter.GetPersonByPersonID(c.Context(), idArg(c))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.NotFoundError{Resource: "person"}
	}
	countries, err := h.Countries.GetAllCountries(c.Context())
	if err != nil {
		return nil, err
	}
	c.ViewData["Countries"] = countries
	return pipeline.View(res.ToPersonUpdateRequest()), nil
}

// PUT /api/persons/:id
func (h Persons) Update(c *pipeline.Context) (*pipeline.Response, error) {
	req := payload[models.PersonUpdateRequest](c)
	if req != nil {
		if id := idArg(c); id != nil {
			req.PersonID = id.String()
		}
	}
	res, err := h.Updater.UpdatePerson(c.Context(), req)
	if err != nil {
		return nil, err
	}
	return pipeline.JSON(http.StatusOK, res), nil
}

// DELETE /api/persons/:id
func (h Persons) Delete(c *pipeline.Context) (*pipeline.Response, error) {
	deleted, err := h.Deleter.DeletePerson(c.Context(), idArg(c))
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.NotFoundError{Resource: "person"}
	}
	return pipeline.StatusCode(http.StatusNoContent), nil
}

// GET /api/persons/pdf
func (h Persons) PDF(c *pipeline.Context) (*pipeline.Response, error) {
	persons, err := h.list(c)
	if err != nil {
		return nil, err
	}
	doc, filename, err := h.Exporter.PersonsPDF(persons)
	if err != nil {
		return nil, err
	}
	c.SetHeader("Content-Disposition", `attachment; filename="`+filename+`"`)
	return pipeline.Data("application/pdf", doc), nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	intdb "crudexample/internal/db"
	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
)

type CountriesRepository struct {
	DB *sql.DB
}

func (r CountriesRepository) db() *sql.DB { return dbOrShared(r.DB) }

// AddCountry inserts c and returns it unchanged.
func (r CountriesRepository) AddCountry(ctx context.Context, c models.Country) (models.Country, error) {
	query, args, err := sq.Insert("countries").
		Columns("id", "name").
		Values(c.ID.String(), c.Name).
		ToSql()
	if err != nil {
		return models.Country{}, err
	}
	if _, err := r.db().ExecContext(ctx, query, args...); err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.Country{}, domain.ConflictError{Resource: "country", Msg: "country name already exists", Err: err}
		}
		return models.Country{}, fmt.Errorf("insert country: %w", err)
	}
	return c, nil
}

func (r CountriesRepository) GetAllCountries(ctx context.Context) ([]models.Country, error) {
	query, args, err := sq.Select("id", "name").From("countries").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	out := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCountryByCountryID returns nil when no row matches.
func (r CountriesRepository) GetCountryByCountryID(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id.String()})
}

// GetCountryByCountryName returns nil when no row matches.
func (r CountriesRepository) GetCountryByCountryName(ctx context.Context, name string) (*models.Country, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r CountriesRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Country, error) {
	query, args, err := sq.Select("id", "name").From("countries").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	var c models.Country
	if err := r.db().QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get country: %w", err)
	}
	return &c, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"crudexample/internal/domain/models"
)

type PersonsRepository struct {
	DB *sql.DB
}

func (r PersonsRepository) db() *sql.DB { return dbOrShared(r.DB) }

var personColumns = []string{
	"p.id", "p.name", "p.email", "p.date_of_birth", "p.gender",
	"p.country_id", "p.address", "p.receive_news_letters", "COALESCE(c.name, '')",
}

func (r PersonsRepository) selectPersons() squirrel.SelectBuilder {
	return sq.Select(personColumns...).
		From("persons p").
		LeftJoin("countries c ON c.id = p.country_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (models.Person, error) {
	var (
		p       models.Person
		dob     sql.NullTime
		gender  string
		country uuid.NullUUID
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &dob, &gender, &country, &p.Address, &p.ReceiveNewsLetters, &p.CountryName); err != nil {
		return models.Person{}, err
	}
	if dob.Valid {
		p.DateOfBirth = dob.Time
	}
	if country.Valid {
		p.CountryID = country.UUID
	}
	p.Gender = models.Gender(gender)
	return p, nil
}

// personValues maps zero values to NULL for the nullable columns.
func personValues(p models.Person) (dob, country any) {
	if !p.DateOfBirth.IsZero() {
		dob = p.DateOfBirth
	}
	if p.CountryID != uuid.Nil {
		country = p.CountryID.String()
	}
	return dob, country
}

func (r PersonsRepository) AddPerson(ctx context.Context, p models.Person) (models.Person, error) {
	dob, country := personValues(p)
	query, args, err := sq.Insert("persons").
		Columns("id", "name", "email", "date_of_birth", "gender", "country_id", "address", "receive_news_letters").
		Values(p.ID.String(), p.Name, p.Email, dob, string(p.Gender), country, p.Address, p.ReceiveNewsLetters).
		ToSql()
	if err != nil {
		return models.Person{}, err
	}
	if _, err := r.db().ExecContext(ctx, query, args...); err != nil {
		return models.Person{}, fmt.Errorf("insert person: %w", err)
	}
	return p, nil
}

// GetAllPersons returns every person joined with its country name.
func (r PersonsRepository) GetAllPersons(ctx context.Context) ([]models.Person, error) {
	query, args, err := r.selectPersons().OrderBy("p.created_at", "p.name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	out := []models.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPersonByID returns nil when no row matches.
func (r PersonsRepository) GetPersonByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	query, args, err := r.selectPersons().Where(squirrel.Eq{"p.id": id.String()}).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanPerson(r.db().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// UpdatePerson overwrites every editable column of the row keyed by p.ID.
func (r PersonsRepository) UpdatePerson(ctx context.Context, p models.Person) (models.Person, error) {
	dob, country := personValues(p)
	query, args, err := sq.Update("persons").
		Set("name", p.Name).
		Set("email", p.Email).
		Set("date_of_birth", dob).
		Set("gender", string(p.Gender)).
		Set("country_id", country).
		Set("address", p.Address).
		Set("receive_news_letters", p.ReceiveNewsLetters).
		Where(squirrel.Eq{"id": p.ID.String()}).
		ToSql()
	if err != nil {
		return models.Person{}, err
	}
	if _, err := r.db().ExecContext(ctx, query, args...); err != nil {
		return models.Person{}, fmt.Errorf("update person: %w", err)
	}
	return p, nil
}

// DeletePerson reports whether a row was removed.
func (r PersonsRepository) DeletePerson(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := sq.Delete("persons").Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return false, err
	}
	res, err := r.db().ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	intdb "crudexample/internal/db"
	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
)

type UsersRepository struct {
	DB *sql.DB
}

func (r UsersRepository) db() *sql.DB { return dbOrShared(r.DB) }

func (r UsersRepository) Add(ctx context.Context, u models.User) (models.User, error) {
	query, args, err := sq.Insert("users").
		Columns("id", "person_name", "email", "phone", "password_hash", "role").
		Values(u.ID.String(), u.PersonName, strings.ToLower(u.Email), u.Phone, u.PasswordHash, u.Role).
		ToSql()
	if err != nil {
		return models.User{}, err
	}
	if _, err := r.db().ExecContext(ctx, query, args...); err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByEmail returns nil when no user has the address.
func (r UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r UsersRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	query, args, err := sq.Select("id", "person_name", "email", "phone", "password_hash", "role").
		From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	var u models.User
	err = r.db().QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.PersonName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

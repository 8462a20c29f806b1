package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var mysqlDDL = []string{
	`CREATE TABLE IF NOT EXISTS countries (
	id CHAR(36) PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	UNIQUE KEY uniq_country_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS persons (
	id CHAR(36) PRIMARY KEY,
	name VARCHAR(40) NOT NULL,
	email VARCHAR(40) NOT NULL,
	date_of_birth DATE NULL,
	gender VARCHAR(10) NOT NULL DEFAULT '',
	country_id CHAR(36) NULL,
	address VARCHAR(200) NOT NULL DEFAULT '',
	receive_news_letters TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_country (country_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS users (
	id CHAR(36) PRIMARY KEY,
	person_name VARCHAR(100) NOT NULL,
	email VARCHAR(100) NOT NULL,
	phone VARCHAR(30) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_user_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS countries (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS persons (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	date_of_birth DATE NULL,
	gender TEXT NOT NULL DEFAULT '',
	country_id TEXT NULL,
	address TEXT NOT NULL DEFAULT '',
	receive_news_letters BOOLEAN NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	person_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}

// Migrate creates the tables the repositories use.
func Migrate(ctx context.Context, db *sql.DB, driverName string) error {
	ddl := mysqlDDL
	if driverName == "sqlite" {
		ddl = sqliteDDL
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

//go:embed seed.yaml
var seedYAML []byte

type seedData struct {
	Countries []struct {
		ID   uuid.UUID `yaml:"id"`
		Name string    `yaml:"name"`
	} `yaml:"countries"`
	Persons []struct {
		ID                 uuid.UUID `yaml:"id"`
		Name               string    `yaml:"name"`
		Email              string    `yaml:"email"`
		DateOfBirth        string    `yaml:"date_of_birth"`
		Gender             string    `yaml:"gender"`
		CountryID          uuid.UUID `yaml:"country_id"`
		Address            string    `yaml:"address"`
		ReceiveNewsLetters bool      `yaml:"receive_news_letters"`
	} `yaml:"persons"`
}

// Seed loads the embedded countries and persons into empty tables.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}

	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(db)

	var count int
	if err := sb.Select("COUNT(*)").From("countries").QueryRowContext(ctx).Scan(&count); err != nil {
		return fmt.Errorf("count countries: %w", err)
	}
	if count == 0 {
		ins := sb.Insert("countries").Columns("id", "name")
		for _, c := range data.Countries {
			ins = ins.Values(c.ID.String(), c.Name)
		}
		if _, err := ins.ExecContext(ctx); err != nil {
			return fmt.Errorf("seed countries: %w", err)
		}
		logger.Info("seeded countries", slog.Int("count", len(data.Countries)))
	}

	if err := sb.Select("COUNT(*)").From("persons").QueryRowContext(ctx).Scan(&count); err != nil {
		return fmt.Errorf("count persons: %w", err)
	}
	if count == 0 {
		ins := sb.Insert("persons").Columns("id", "name", "email", "date_of_birth", "gender", "country_id", "address", "receive_news_letters")
		for _, p := range data.Persons {
			var dob any
			if t, err := time.Parse("2006-01-02", p.DateOfBirth); err == nil {
				dob = t
			}
			ins = ins.Values(p.ID.String(), p.Name, p.Email, dob, p.Gender, p.CountryID.String(), p.Address, p.ReceiveNewsLetters)
		}
		if _, err := ins.ExecContext(ctx); err != nil {
			return fmt.Errorf("seed persons: %w", err)
		}
		logger.Info("seeded persons", slog.Int("count", len(data.Persons)))
	}
	return nil
}

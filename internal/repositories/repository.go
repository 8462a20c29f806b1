package repositories

import (
	"database/sql"

	"github.com/Masterminds/squirrel"

	intconfig "crudexample/internal/config"
)

// Both supported drivers take '?' placeholders.
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func dbOrShared(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

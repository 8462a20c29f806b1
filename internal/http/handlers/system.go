package handlers

import (
	"database/sql"
	"net/http"

	intconfig "crudexample/internal/config"
	intdb "crudexample/internal/db"
	"crudexample/internal/domain"
	"crudexample/internal/pipeline"
)

type System struct {
	DB     *sql.DB
	Driver string
}

// GET /health
func (h System) Health(c *pipeline.Context) (*pipeline.Response, error) {
	return pipeline.JSON(http.StatusOK, map[string]any{"status": "ok"}), nil
}

// GET /api/db-check
func (h System) DBCheck(c *pipeline.Context) (*pipeline.Response, error) {
	db, driverName := h.DB, h.Driver
	if db == nil {
		if err := intconfig.EnsureDB(c.Context()); err != nil {
			return nil, domain.InternalError{Msg: "database not connected", Err: err}
		}
		db, driverName = intconfig.DB, intconfig.Driver
	}

	tables := map[string]bool{}
	for _, t := range []string{"countries", "persons", "users"} {
		tables[t] = intdb.HasTable(c.Context(), db, driverName, t)
	}
	if !tables["persons"] {
		return pipeline.JSON(http.StatusServiceUnavailable, map[string]any{"status": "schema missing", "tables": tables}), nil
	}

	var count int
	if err := db.QueryRowContext(c.Context(), "SELECT COUNT(*) FROM persons").Scan(&count); err != nil {
		return nil, domain.InternalError{Msg: "query database", Err: err}
	}
	return pipeline.JSON(http.StatusOK, map[string]any{"status": "ok", "tables": tables, "persons_in_db": count}), nil
}

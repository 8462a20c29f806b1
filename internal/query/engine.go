package query

import (
	"slices"
	"strings"

	"crudexample/internal/domain"
)

// Filter keeps the records whose field matches search, in input order.
// An empty search or a token outside the registry returns records as given.
func Filter[T any](records []T, reg *Registry[T], field, search string) []T {
	if strings.TrimSpace(search) == "" {
		return records
	}
	acc, err := reg.Resolve(field)
	if err != nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if acc.Match(rec, search) {
			out = append(out, rec)
		}
	}
	return out
}

// Sort returns a stably sorted copy of records. Descending only flips the
// comparator sign, so equal records keep their input order either way. A
// token outside the registry returns records as given.
func Sort[T any](records []T, reg *Registry[T], field string, dir domain.SortDirection) []T {
	acc, err := reg.Resolve(field)
	if err != nil {
		return records
	}
	out := slices.Clone(records)
	if dir == domain.Descending {
		slices.SortStableFunc(out, func(a, b T) int { return -acc.Compare(a, b) })
	} else {
		slices.SortStableFunc(out, acc.Compare)
	}
	return out
}

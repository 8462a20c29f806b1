package domain

import "strings"

// SortDirection orders a sort result.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// String returns the wire form used in query arguments.
func (d SortDirection) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseSortDirection accepts ASC/DESC in any case. Anything else is reported
// as not ok so callers can fall back to Ascending.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return Ascending, true
	case "DESC":
		return Descending, true
	default:
		return Ascending, false
	}
}

// Role names an account role.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

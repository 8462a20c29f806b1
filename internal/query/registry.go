// Package query filters and sorts in-memory record slices by field token.
//
// The set of tokens a record type supports is fixed when its Registry is built
// at startup. Lookups never use reflection: every token maps to one Accessor
// holding a typed matcher and comparator.
package query

import (
	"cmp"
	"strings"
	"time"

	"crudexample/internal/domain"
)

// Kind selects matching and ordering semantics for a field.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindEnum
	KindIdentifier
)

// DateLayout is the canonical rendering used when matching date fields.
const DateLayout = "2006-01-02"

// Accessor reads one field off a record of type T.
type Accessor[T any] struct {
	Kind Kind
	// Text renders the field the way filtering sees it.
	Text func(T) string
	// Compare orders two records on the field, ascending.
	Compare func(a, b T) int
}

// Match reports whether rec satisfies search for this field. Text and date
// fields use case-insensitive containment; enum and identifier fields use a
// case-insensitive exact compare.
func (a Accessor[T]) Match(rec T, search string) bool {
	v := a.Text(rec)
	switch a.Kind {
	case KindEnum, KindIdentifier:
		return strings.EqualFold(v, search)
	default:
		return strings.Contains(strings.ToLower(v), strings.ToLower(search))
	}
}

// TextField builds an accessor for a string field ordered ordinal-ignore-case.
func TextField[T any](get func(T) string) Accessor[T] {
	return Accessor[T]{
		Kind: KindText,
		Text: get,
		Compare: func(a, b T) int {
			return strings.Compare(strings.ToUpper(get(a)), strings.ToUpper(get(b)))
		},
	}
}

// DateField builds an accessor for an optional date. Absent dates render as
// the empty string and order before any present date.
func DateField[T any](get func(T) *time.Time) Accessor[T] {
	return Accessor[T]{
		Kind: KindDate,
		Text: func(rec T) string {
			if d := get(rec); d != nil {
				return d.Format(DateLayout)
			}
			return ""
		},
		Compare: func(a, b T) int {
			da, db := get(a), get(b)
			switch {
			case da == nil && db == nil:
				return 0
			case da == nil:
				return -1
			case db == nil:
				return 1
			default:
				return da.Compare(*db)
			}
		},
	}
}

// EnumField builds an accessor ordered by enum ordinal.
func EnumField[T any](get func(T) string, ordinal func(T) int) Accessor[T] {
	return Accessor[T]{
		Kind: KindEnum,
		Text: get,
		Compare: func(a, b T) int {
			return cmp.Compare(ordinal(a), ordinal(b))
		},
	}
}

// IdentifierField builds an accessor for an opaque id, ordered by its string
// form ignoring case.
func IdentifierField[T any](get func(T) string) Accessor[T] {
	a := TextField(get)
	a.Kind = KindIdentifier
	return a
}

// Registry is the closed token set for one record type. Build it with
// NewRegistry and Register during startup; after that it is read-only and
// safe for concurrent use.
type Registry[T any] struct {
	fields map[string]Accessor[T]
	tokens []string
	def    string
}

// NewRegistry creates a registry whose fallback token is def. def must be
// registered before the registry is used.
func NewRegistry[T any](def string) *Registry[T] {
	return &Registry[T]{fields: map[string]Accessor[T]{}, def: def}
}

// Register adds token. Registering the same token twice replaces the accessor
// but keeps its original position in Tokens.
func (r *Registry[T]) Register(token string, a Accessor[T]) *Registry[T] {
	if _, ok := r.fields[token]; !ok {
		r.tokens = append(r.tokens, token)
	}
	r.fields[token] = a
	return r
}

// Resolve returns the accessor for token or an UnknownFieldError.
func (r *Registry[T]) Resolve(token string) (Accessor[T], error) {
	a, ok := r.fields[token]
	if !ok {
		return Accessor[T]{}, domain.UnknownFieldError{Token: token}
	}
	return a, nil
}

// Has reports whether token is in the closed set.
func (r *Registry[T]) Has(token string) bool {
	_, ok := r.fields[token]
	return ok
}

// Default is the fallback token.
func (r *Registry[T]) Default() string { return r.def }

// Tokens lists the registered tokens in registration order.
func (r *Registry[T]) Tokens() []string {
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Normalize maps an unknown token to the default. changed is true when the
// input was replaced.
func (r *Registry[T]) Normalize(token string) (normalized string, changed bool) {
	if r.Has(token) {
		return token, false
	}
	return r.def, true
}

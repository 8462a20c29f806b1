package pipeline

import "fmt"

// Items is the per-request key/value bag stages use to hand data to each
// other. One Items belongs to one Run; it is not safe for concurrent use and
// must not outlive the request.
type Items struct {
	m map[string]any
}

func newItems() *Items {
	return &Items{m: map[string]any{}}
}

func (i *Items) Set(key string, value any) {
	i.m[key] = value
}

// Get returns the value stored under key. Absent keys report ok=false.
func (i *Items) Get(key string) (any, bool) {
	v, ok := i.m[key]
	return v, ok
}

// String returns the value under key rendered as a string. Absent keys and
// nil values report ok=false.
func (i *Items) String(key string) (string, bool) {
	v, ok := i.m[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func (i *Items) Delete(key string) {
	delete(i.m, key)
}

// Args holds the bound handler arguments. Action stages may rewrite entries
// before the handler reads them.
type Args map[string]any

// String returns the argument as a string, or "" when absent.
func (a Args) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Has reports whether key was bound.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

package filters

import (
	"log/slog"

	"crudexample/internal/domain"
	"crudexample/internal/pipeline"
)

// List argument names bound by the persons index and export handlers.
const (
	ArgSearchBy     = "searchBy"
	ArgSearchString = "searchString"
	ArgSortBy       = "sortBy"
	ArgSortOrder    = "sortOrder"
)

// FieldSet is the closed token set list arguments are normalized against.
type FieldSet interface {
	Normalize(token string) (normalized string, changed bool)
}

// PersonsList normalizes the search/sort arguments before the handler runs
// and reflects the values the handler actually used into view data after it.
type PersonsList struct {
	Fields FieldSet
	Logger *slog.Logger
}

func (f PersonsList) Name() string { return "PersonsList" }

func (f PersonsList) OnActionExecuting(c *pipeline.Context) {
	f.Logger.Debug("action stage", slog.String("stage", f.Name()), slog.String("hook", "OnActionExecuting"))

	// The live argument map is stored so the after hook sees the rewrites.
	c.Items.Set(ItemParameters, c.Args)

	for _, key := range []string{ArgSearchBy, ArgSortBy} {
		if !c.Args.Has(key) {
			continue
		}
		value := c.Args.String(key)
		normalized, changed := f.Fields.Normalize(value)
		if !changed {
			continue
		}
		f.Logger.Info("unexpected list field, using default",
			slog.String("argument", key),
			slog.String("value", value),
			slog.String("default", normalized),
		)
		c.Items.Set(originalKey(key), value)
		c.Args[key] = normalized
	}

	if c.Args.Has(ArgSortOrder) {
		raw := c.Args.String(ArgSortOrder)
		dir, ok := domain.ParseSortDirection(raw)
		if !ok {
			f.Logger.Info("unexpected sort order, using default", slog.String("value", raw))
			c.Items.Set(originalKey(ArgSortOrder), raw)
		}
		c.Args[ArgSortOrder] = dir.String()
	}
}

func (f PersonsList) OnActionExecuted(c *pipeline.Context) {
	f.Logger.Debug("action stage", slog.String("stage", f.Name()), slog.String("hook", "OnActionExecuted"))

	v, ok := c.Items.Get(ItemParameters)
	if !ok {
		return
	}
	params, ok := v.(pipeline.Args)
	if !ok {
		return
	}
	for arg, view := range map[string]string{
		ArgSearchBy:     "CurrentSearchBy",
		ArgSearchString: "CurrentSearchString",
		ArgSortBy:       "CurrentSortBy",
		ArgSortOrder:    "CurrentSortOrder",
	} {
		if params.Has(arg) {
			c.ViewData[view] = params.String(arg)
		}
	}
}

func originalKey(arg string) string {
	return "persons_list.original." + arg
}

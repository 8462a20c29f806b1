package filters

import (
	"log/slog"
	"net/http"

	"crudexample/internal/pipeline"
)

// DisableResource answers 501 without running the handler while Disabled is
// set. Used to switch endpoints off by configuration.
type DisableResource struct {
	Disabled bool
	Logger   *slog.Logger
}

func (d DisableResource) Name() string { return "DisableResource" }

func (d DisableResource) OnResourceExecution(c *pipeline.Context, next func()) {
	d.Logger.Info("resource stage started", slog.String("stage", d.Name()), slog.Bool("disabled", d.Disabled))
	if d.Disabled {
		c.Result = pipeline.StatusCode(http.StatusNotImplemented)
	} else {
		next()
	}
	d.Logger.Info("resource stage finished", slog.String("stage", d.Name()))
}

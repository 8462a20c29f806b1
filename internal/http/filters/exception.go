package filters

import (
	"log/slog"
	"net/http"

	"crudexample/internal/domain"
	"crudexample/internal/pipeline"
)

// RequestIDFunc reads the request id for error bodies and logs.
type RequestIDFunc func(c *pipeline.Context) string

// Exception is the single fault boundary. Known domain errors become 4xx with
// their message; everything else becomes a fixed 500 body.
type Exception struct {
	Logger    *slog.Logger
	RequestID RequestIDFunc
}

func (e Exception) Name() string { return "Exception" }

func (e Exception) OnException(c *pipeline.Context) {
	reqID := ""
	if e.RequestID != nil {
		reqID = e.RequestID(c)
	}
	err := c.Err

	status, code, msg := http.StatusInternalServerError, "internal_error", "internal server error"
	switch {
	case domain.IsValidation(err):
		status, code, msg = http.StatusBadRequest, "validation_error", err.Error()
	case domain.IsNotFound(err):
		status, code, msg = http.StatusNotFound, "not_found", err.Error()
	case domain.IsConflict(err):
		status, code, msg = http.StatusConflict, "conflict", err.Error()
	}

	if status == http.StatusInternalServerError {
		e.Logger.Error("unhandled fault",
			slog.String("stage", e.Name()),
			slog.String("request_id", reqID),
			slog.Any("error", err),
		)
	} else {
		e.Logger.Info("request rejected",
			slog.String("request_id", reqID),
			slog.Int("status", status),
			slog.String("error", msg),
		)
	}

	body := map[string]any{"error": msg, "code": code}
	if reqID != "" {
		body["request_id"] = reqID
	}
	c.Result = pipeline.JSON(status, body)
	c.ExceptionHandled = true
}

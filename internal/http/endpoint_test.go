package api

import (
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"crudexample/internal/pipeline"
)

func serveOne(t *testing.T, h pipeline.Handler) *httptest.ResponseRecorder {
	t.Helper()
	p := pipeline.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := gin.New()
	r.GET("/", Endpoint(p, pipeline.Descriptor{Name: "test"}, nil, h))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	return w
}

func TestWriteViewWithoutModelKeepsViewData(t *testing.T) {
	w := serveOne(t, func(c *pipeline.Context) (*pipeline.Response, error) {
		c.ViewData["CurrentSortBy"] = "PersonName"
		return pipeline.View(nil), nil
	})
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		Model    any            `json:"model"`
		ViewData map[string]any `json:"view_data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if body.Model != nil || body.ViewData["CurrentSortBy"] != "PersonName" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestWriteRedirectAndData(t *testing.T) {
	w := serveOne(t, func(c *pipeline.Context) (*pipeline.Response, error) {
		return pipeline.Redirect("/api/persons"), nil
	})
	if w.Code != stdhttp.StatusFound || w.Header().Get("Location") != "/api/persons" {
		t.Fatalf("redirect: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	w = serveOne(t, func(c *pipeline.Context) (*pipeline.Response, error) {
		return pipeline.Data("text/plain", []byte("hi")), nil
	})
	if w.Code != stdhttp.StatusOK || w.Body.String() != "hi" || w.Header().Get("Content-Type") != "text/plain" {
		t.Fatalf("data: status %d type %q body %q", w.Code, w.Header().Get("Content-Type"), w.Body.String())
	}
}

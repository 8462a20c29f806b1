// Package filters holds the concrete pipeline stages the HTTP layer registers.
package filters

import (
	"log/slog"
	"net/http"
	"strings"

	"crudexample/internal/auth"
	"crudexample/internal/pipeline"
)

// Request item keys shared between stages and handlers.
const (
	ItemParameters = "parameters"
	ItemSubject    = "auth.subject"
	ItemRole       = "auth.role"
	ItemSignOut    = "auth.sign_out"
)

// DefaultAuthCookie names the auth marker cookie.
const DefaultAuthCookie = "Auth-Key"

// Verifier checks an auth marker.
type Verifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Authorization rejects requests without a valid auth marker cookie with 401.
// Handlers opt out through their descriptor; the executor checks that before
// this stage runs.
type Authorization struct {
	Tokens Verifier
	Cookie string
	Logger *slog.Logger
}

func (a Authorization) Name() string { return "Authorization" }

func (a Authorization) OnAuthorization(c *pipeline.Context) {
	name := a.Cookie
	if name == "" {
		name = DefaultAuthCookie
	}
	raw, ok := c.Cookie(name)
	if !ok || raw == "" {
		c.Result = pipeline.StatusCode(http.StatusUnauthorized)
		return
	}
	claims, err := a.Tokens.Verify(raw)
	if err != nil {
		if a.Logger != nil {
			a.Logger.Info("auth marker rejected", slog.Any("error", err))
		}
		c.Result = pipeline.StatusCode(http.StatusUnauthorized)
		return
	}
	c.Items.Set(ItemSubject, claims.Subject)
	c.Items.Set(ItemRole, claims.Role)
}

// RequireRoles only lets through requests whose authorized role is listed.
// It must be ordered after Authorization.
type RequireRoles struct {
	allowed map[string]struct{}
}

func NewRequireRoles(roles ...string) RequireRoles {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return RequireRoles{allowed: allowed}
}

func (r RequireRoles) Name() string { return "RequireRoles" }

func (r RequireRoles) OnAuthorization(c *pipeline.Context) {
	role, ok := c.Items.String(ItemRole)
	if !ok || role == "" {
		c.Result = pipeline.JSON(http.StatusUnauthorized, map[string]any{"error": "unauthorized: role missing"})
		return
	}
	if _, ok := r.allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
		c.Result = pipeline.JSON(http.StatusForbidden, map[string]any{"error": "forbidden: role not allowed"})
	}
}

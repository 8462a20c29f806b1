package filters

import (
	"log/slog"
	"net/http"
	"time"

	"crudexample/internal/pipeline"
)

// ResponseHeader sets one response header once the handler has produced a
// response.
type ResponseHeader struct {
	Key    string
	Value  string
	Logger *slog.Logger
}

func (h ResponseHeader) Name() string { return "ResponseHeader" }

func (h ResponseHeader) OnActionExecuting(c *pipeline.Context) {
	h.Logger.Debug("action stage", slog.String("stage", h.Name()), slog.String("hook", "OnActionExecuting"))
}

func (h ResponseHeader) OnActionExecuted(c *pipeline.Context) {
	h.Logger.Debug("action stage", slog.String("stage", h.Name()), slog.String("hook", "OnActionExecuted"))
	c.SetHeader(h.Key, h.Value)
}

// Issuer signs auth markers.
type Issuer interface {
	Issue(subject, role string) (string, error)
	TTL() time.Duration
}

// AuthToken refreshes the auth marker cookie for the signed-in subject, or
// expires it on sign-out, right before the response is committed.
type AuthToken struct {
	Tokens Issuer
	Cookie string
	Secure bool
	Logger *slog.Logger
}

func (a AuthToken) Name() string { return "AuthToken" }

func (a AuthToken) OnResultExecution(c *pipeline.Context, next func()) {
	name := a.Cookie
	if name == "" {
		name = DefaultAuthCookie
	}
	switch {
	case signedOut(c):
		c.SetCookie(&http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.Secure})
	case c.Result != nil && c.Result.Status < http.StatusBadRequest:
		if subject, ok := c.Items.String(ItemSubject); ok && subject != "" {
			role, _ := c.Items.String(ItemRole)
			token, err := a.Tokens.Issue(subject, role)
			if err != nil {
				a.Logger.Error("issue auth marker", slog.Any("error", err))
				break
			}
			c.SetCookie(&http.Cookie{
				Name:     name,
				Value:    token,
				Path:     "/",
				MaxAge:   int(a.Tokens.TTL().Seconds()),
				HttpOnly: true,
				Secure:   a.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}
	next()
}

func signedOut(c *pipeline.Context) bool {
	v, ok := c.Items.Get(ItemSignOut)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

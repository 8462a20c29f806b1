package api

import (
	"log/slog"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "crudexample/internal/config"
	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
	h "crudexample/internal/http/handlers"
	"crudexample/internal/http/filters"
	"crudexample/internal/http/middleware"
	"crudexample/internal/pipeline"
)

// Global stage orders. Descriptor stages use the same scale.
const (
	OrderAuthorization = 0
	OrderRoles         = 10
	OrderException     = 0
	OrderAuthToken     = 0
	OrderPersonsList   = 0
	OrderHeader        = 10
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Logger    *slog.Logger
	Tokens    TokenService
	Persons   h.Persons
	Countries h.Countries
	Account   h.Account
	System    h.System
}

type TokenService interface {
	filters.Verifier
	filters.Issuer
}

// NewPipeline registers the global stages and freezes the list.
func NewPipeline(env intconfig.Env, deps Deps) (*pipeline.Pipeline, error) {
	p := pipeline.New(deps.Logger)
	for _, reg := range []pipeline.Registration{
		{Stage: filters.Authorization{Tokens: deps.Tokens, Cookie: env.Auth.Cookie, Logger: deps.Logger}, Order: OrderAuthorization},
		{Stage: filters.Exception{Logger: deps.Logger, RequestID: requestID}, Order: OrderException},
		{Stage: filters.AuthToken{Tokens: deps.Tokens, Cookie: env.Auth.Cookie, Secure: env.Auth.Secure, Logger: deps.Logger}, Order: OrderAuthToken},
	} {
		if err := p.Register(reg.Stage, reg.Order); err != nil {
			return nil, err
		}
	}
	p.Freeze()
	return p, nil
}

func requestID(c *pipeline.Context) string {
	return middleware.RequestIDFromContext(c.Context())
}

func NewRouter(env intconfig.Env, deps Deps) (*gin.Engine, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	p, err := NewPipeline(env, deps)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(deps.Logger), gin.Recovery())
	if len(env.CORS.Origins) > 0 {
		r.Use(middleware.CORS(env.CORS.Origins))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		deps.Logger.Warn("failed to set trusted proxies", slog.Any("error", err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	route := func(name string) pipeline.Descriptor { return pipeline.Descriptor{Name: name} }

	r.GET("/health", Endpoint(p, route("system.health").SkipAuth(), nil, deps.System.Health))

	api := r.Group("/api")
	api.GET("/db-check", Endpoint(p, route("system.db_check"), nil, deps.System.DBCheck))

	list := filters.PersonsList{Fields: models.PersonFields, Logger: deps.Logger}
	persons := api.Group("/persons")
	{
		index := route("persons.index").
			Use(list, OrderPersonsList).
			Use(filters.ResponseHeader{Key: "My-Key-From-Action", Value: "My-Value-From-Action", Logger: deps.Logger}, OrderHeader)
		pdf := route("persons.pdf").
			Use(filters.DisableResource{Disabled: !env.Features.PersonsPDF, Logger: deps.Logger}, 0).
			Use(list, OrderPersonsList)

		persons.GET("", Endpoint(p, index, h.BindList, deps.Persons.Index))
		persons.GET("/new", Endpoint(p, route("persons.new"), nil, deps.Persons.New))
		persons.GET("/pdf", Endpoint(p, pdf, h.BindList, deps.Persons.PDF))
		persons.POST("", Endpoint(p, route("persons.create"), h.BindJSON[models.PersonAddRequest](), deps.Persons.Create))
		persons.GET("/:id", Endpoint(p, route("persons.show"), h.BindID, deps.Persons.Show))
		persons.GET("/:id/edit", Endpoint(p, route("persons.edit"), h.BindID, deps.Persons.Edit))
		persons.PUT("/:id", Endpoint(p, route("persons.update"), h.Binds(h.BindID, h.BindJSON[models.PersonUpdateRequest]()), deps.Persons.Update))
		persons.DELETE("/:id", Endpoint(p, route("persons.delete"), h.BindID, deps.Persons.Delete))
	}

	countries := api.Group("/countries")
	{
		admin := route("countries.create").Use(filters.NewRequireRoles(string(domain.RoleAdmin)), OrderRoles)

		countries.GET("", Endpoint(p, route("countries.list"), nil, deps.Countries.List))
		countries.GET("/:id", Endpoint(p, route("countries.show"), h.BindID, deps.Countries.Show))
		countries.POST("", Endpoint(p, admin, h.BindJSON[models.CountryAddRequest](), deps.Countries.Create))
	}

	account := api.Group("/account")
	{
		account.POST("/register", Endpoint(p, route("account.register").SkipAuth(), h.BindJSON[models.RegisterRequest](), deps.Account.Register))
		account.POST("/login", Endpoint(p, route("account.login").SkipAuth(), h.BindJSON[models.LoginRequest](), deps.Account.Login))
		account.POST("/logout", Endpoint(p, route("account.logout"), nil, deps.Account.Logout))
		account.GET("/email-available", Endpoint(p, route("account.email_available").SkipAuth(), h.BindQuery(h.ArgEmail), deps.Account.EmailAvailable))
	}

	return r, nil
}

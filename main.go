package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"crudexample/internal/auth"
	intconfig "crudexample/internal/config"
	intdb "crudexample/internal/db"
	router "crudexample/internal/http"
	h "crudexample/internal/http/handlers"
	"crudexample/internal/repositories"
	"crudexample/internal/services"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := newLogger(env.Log.Level)
	slog.SetDefault(logger)

	if env.App.GinMode != "" {
		gin.SetMode(env.App.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DB, logger)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intdb.Migrate(bootCtx, db, env.DB.Driver); err != nil {
		logger.Error("migrate database", slog.Any("error", err))
		cancelBoot()
		os.Exit(1)
	}
	if env.DB.Seed {
		if err := intdb.Seed(bootCtx, db, logger); err != nil {
			logger.Error("seed database", slog.Any("error", err))
			cancelBoot()
			os.Exit(1)
		}
	}
	cancelBoot()

	if env.Auth.Secret == "change-me" {
		logger.Warn("auth.secret is the default value; set CRUD_AUTH_SECRET")
	}

	persons := services.PersonsService{Repo: repositories.PersonsRepository{DB: db}, Logger: logger}
	countries := services.CountriesService{Repo: repositories.CountriesRepository{DB: db}, Logger: logger}
	accounts := services.AccountsService{Users: repositories.UsersRepository{DB: db}, Logger: logger}

	r, err := router.NewRouter(env, router.Deps{
		Logger: logger,
		Tokens: auth.NewTokens(env.Auth.Secret, env.Auth.TTL),
		Persons: h.Persons{
			Adder:     persons,
			Getter:    persons,
			Sorter:    persons,
			Updater:   persons,
			Deleter:   persons,
			Countries: countries,
			Exporter:  services.PersonsPDFService{Logger: logger},
		},
		Countries: h.Countries{Service: countries},
		Account:   h.Account{Service: accounts},
		System:    h.System{DB: db, Driver: env.DB.Driver},
	})
	if err != nil {
		logger.Error("build router", slog.Any("error", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              env.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", env.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
		return
	}

	logger.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

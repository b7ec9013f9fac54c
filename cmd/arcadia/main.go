package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcadia-store/arcadia/internal/app"
	"github.com/arcadia-store/arcadia/internal/auth"
	"github.com/arcadia-store/arcadia/internal/federation"
	"github.com/arcadia-store/arcadia/internal/observability"
	"github.com/arcadia-store/arcadia/internal/platform/cache"
	"github.com/arcadia-store/arcadia/internal/platform/db"
	"github.com/arcadia-store/arcadia/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
		logger.Error("apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		AccessSecret:  []byte(cfg.AccessTokenSecret),
		RefreshSecret: []byte(cfg.RefreshTokenSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	if err != nil {
		logger.Error("configure token issuer", slog.Any("error", err))
		os.Exit(1)
	}

	var verifier federation.Verifier = federation.Disabled{}
	if cfg.GoogleClientID != "" {
		verifier, err = federation.NewGoogleVerifier(ctx, cfg.GoogleClientID, logger)
		if err != nil {
			logger.Error("configure google verifier", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		logger.Warn("google client id not configured, federated login disabled")
	}

	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(dbpool)
	revocations := auth.NewRevocationList(redisClient)
	authService := auth.NewService(authRepo, issuer, revocations, logger)
	cookies := auth.CookieWriter{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		Secure:     cfg.IsProduction(),
	}
	authHandler := auth.NewHandler(logger, authService, verifier, cookies, metrics)
	gate := auth.Middleware{Issuer: issuer, Logger: logger}

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, gate)

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		AuthHandler:  authHandler,
		UsersHandler: usersHandler,
		Gate:         gate,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

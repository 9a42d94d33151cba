package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fingate/fingate/internal/app"
	"github.com/fingate/fingate/internal/auth"
	"github.com/fingate/fingate/internal/ledger"
	"github.com/fingate/fingate/internal/observability"
	"github.com/fingate/fingate/internal/platform/cache"
	"github.com/fingate/fingate/internal/platform/db"
	"github.com/fingate/fingate/internal/rbac"
	"github.com/fingate/fingate/internal/shared"
	"github.com/fingate/fingate/internal/sso"
	"github.com/fingate/fingate/internal/users"
	"github.com/fingate/fingate/internal/view"
	"github.com/fingate/fingate/report"
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "fingate_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	userService := users.NewService(users.NewRepository(dbpool))
	rbacService := rbac.NewService(dbpool)

	ssoVerifier := sso.NewVerifier(sso.NewSecretRepository(dbpool), userService, rbacService, cfg.SSODepartment)
	metrics := observability.NewMetrics()
	ssoHandler := sso.NewHandler(logger, ssoVerifier, userService, metrics)

	reportCache := ledger.NewCache(redisClient, cfg.ReportCacheTTL)
	ledgerService := ledger.NewService(ledger.NewRepository(dbpool), reportCache, cfg.CashAccountCodes)
	reportClient := report.NewClient(cfg.GotenbergURL)
	ledgerHandler := ledger.NewHandler(logger, ledgerService, templates, csrfManager, reportClient)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		AuthHandler:    authHandler,
		SSOHandler:     ssoHandler,
		LedgerHandler:  ledgerHandler,
		RBACMiddleware: rbac.Middleware{Service: rbacService, Logger: logger},
		Metrics:        metrics,
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

// Package main provides the entry point for the dashboard API server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chuehnone/developers-dashboard/internal/cache"
	"github.com/chuehnone/developers-dashboard/internal/config"
	"github.com/chuehnone/developers-dashboard/internal/copilot"
	"github.com/chuehnone/developers-dashboard/internal/dashboard"
	githubclient "github.com/chuehnone/developers-dashboard/internal/github/client"
	"github.com/chuehnone/developers-dashboard/internal/health"
	"github.com/chuehnone/developers-dashboard/internal/jira"
	"github.com/chuehnone/developers-dashboard/internal/middleware"
	"github.com/chuehnone/developers-dashboard/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := cache.Open(cfg.Cache)
	if err != nil {
		zapLogger.Fatalw("failed to open cache store", "error", err)
	}
	defer func() {
		if err := cache.Close(db); err != nil {
			zapLogger.Warnw("failed to close cache store", "error", err)
		}
	}()

	store := cache.NewStore(db, cfg.Cache.DefaultTTL, zapLogger)

	githubClient := githubclient.NewClient(cfg.GitHub, zapLogger)
	copilotClient := copilot.NewClient(cfg.GitHub, zapLogger)

	var jiraFetcher dashboard.JiraFetcher
	if cfg.Jira.Enabled() {
		jiraFetcher = jira.NewClient(cfg.Jira, zapLogger)
		zapLogger.Infow("jira integration enabled", "project", cfg.Jira.ProjectKey)
	} else {
		zapLogger.Infow("jira integration disabled")
	}

	service := dashboard.NewService(
		githubClient,
		jiraFetcher,
		copilotClient,
		store,
		cfg.Cache.FallbackToMock,
		zapLogger,
	)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.Recovery(zapLogger))
	router.Use(middleware.Logger(zapLogger))

	router.GET("/healthz", health.New(db, zapLogger).Check)
	dashboard.RegisterRoutes(router, dashboard.NewHandler(service, zapLogger))

	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Infow("starting server", "addr", server.Addr, "org", cfg.GitHub.Org)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Errorw("graceful shutdown failed", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tracker.app/api-server/core/config"
	"tracker.app/api-server/core/db"
	"tracker.app/api-server/core/observability"
	"tracker.app/api-server/internal/http/handler"
	"tracker.app/api-server/internal/http/router"
	"tracker.app/api-server/internal/service"
	"tracker.app/api-server/internal/store"
	"tracker.app/api-server/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if telemetry == nil {
			return
		}
		if err := telemetry.Shutdown(context.Background()); err != nil {
			slog.Error("failed to flush telemetry", "error", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Server.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	database, disconnect, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := disconnect(context.Background()); err != nil {
			slog.Error("failed to disconnect from mongo", "error", err)
		}
	}()

	stores := store.New(database)

	activityService := service.NewActivityService(stores.Activities)
	authService := service.NewAuthService(stores.Users, stores.Sessions, activityService, cfg.SessionTTL)
	releaseService := service.NewReleaseService(stores.Releases, activityService)
	userService := service.NewUserService(stores.Users, activityService)
	searchService := service.NewSearchService(stores.Releases)

	janitor := worker.NewSessionJanitor(stores.Sessions, time.Hour)
	go janitor.Run(ctx)

	engine := router.New(authService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Release:  handler.NewReleaseHandler(releaseService),
		WorkItem: handler.NewWorkItemHandler(releaseService),
		User:     handler.NewUserHandler(userService),
		Activity: handler.NewActivityHandler(activityService),
		Search:   handler.NewSearchHandler(searchService),
	}, telemetry != nil)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

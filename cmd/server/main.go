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

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/router"
	"github.com/LackyKannauje/college-updates/pkg/config"
	"github.com/LackyKannauje/college-updates/pkg/logger"
	"github.com/LackyKannauje/college-updates/pkg/storage"
	"github.com/LackyKannauje/college-updates/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.Init(cfg)
	defer sentry.Flush(2 * time.Second)

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	assets, err := storage.New(cfg)
	if err != nil {
		log.Error("failed to initialize asset storage", "backend", cfg.AssetBackend, "error", err)
		os.Exit(1)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDev()

	v := validators.NewValidator()
	e.Validator = v

	router.SetupMiddleware(e, cfg, log)
	router.SetupRoutes(e, cfg, router.Dependencies{DB: db, Assets: assets}, v)

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}

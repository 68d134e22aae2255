package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/quillworks/promptvault/internal/vault/http"
	"github.com/quillworks/promptvault/internal/vault/service"
	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/internal/vault/store/drivers/sqlite"
	"github.com/quillworks/promptvault/internal/vault/titlegen"
	"github.com/quillworks/promptvault/pkg/cryptox"
	"github.com/quillworks/promptvault/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the vault service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions *session.Store

	// Services
	authService         *service.AuthService
	promptService       *service.PromptService
	migrationService    *service.TitleMigrationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "vault-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("vault service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vault service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("vault service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessions = session.NewStore(app.cfg.SessionTTL)

	// Without an upstream URL the title generator stays nil: prompts save
	// fine, they just never get generated titles.
	var titles service.TitleGenerator
	if app.cfg.TitleAPIBaseURL != "" {
		client := titlegen.NewClient(app.cfg.TitleAPIBaseURL, app.cfg.TitleAPIKey, app.cfg.TitleModel)
		client.HTTPClient.Timeout = app.cfg.TitleTimeout
		titles = client
		app.logger.Info("title generation enabled", "model", app.cfg.TitleModel)
	} else {
		app.logger.Warn("title generation disabled: no upstream configured")
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Sessions: app.sessions,
	}
	app.promptService = &service.PromptService{
		Store:  app.db,
		Titles: titles,
	}
	app.migrationService = service.NewTitleMigrationService(app.db, titles, app.cfg.MigrationDelay)

	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	secureCookies := app.cfg.Env == "prod"

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.sessions,
		app.logger,
		secureCookies,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.PromptService = app.promptService
	router.MigrationService = app.migrationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
